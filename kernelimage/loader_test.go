// This file is part of MIA.
//
// MIA is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// MIA is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with MIA.  If not, see <https://www.gnu.org/licenses/>.

package kernelimage_test

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/softlatch/mia/kernelimage"
	"github.com/softlatch/mia/test"
)

func TestEmbedded(t *testing.T) {
	ldr := kernelimage.Embedded()
	test.ExpectSuccess(t, ldr.HasLoaded())
	test.ExpectEquality(t, ldr.ShortName(), "demo")
	test.ExpectEquality(t, len(ldr.Hash), 40)
	test.ExpectSuccess(t, len(ldr.Data) <= kernelimage.MaxSize)

	// the image begins with the interrupt disable prologue and ends in NOP
	// padding
	test.ExpectEquality(t, ldr.Data[0], uint8(0x78))
	test.ExpectEquality(t, ldr.Data[len(ldr.Data)-1], uint8(0xea))

	// loading is a no-op for an embedded image
	test.ExpectSuccess(t, ldr.Load())

	// every call returns an independent copy
	ldr.Data[0] = 0x00
	test.ExpectEquality(t, kernelimage.Embedded().Data[0], uint8(0x78))
}

func TestLoadFile(t *testing.T) {
	img := []byte{0xa9, 0x01, 0x8d, 0x00, 0xc1, 0x4c, 0x05, 0x40}
	fn := filepath.Join(t.TempDir(), "kernel.bin")
	test.DemandSuccess(t, os.WriteFile(fn, img, 0644))

	ldr := kernelimage.NewLoader(fn)
	test.ExpectEquality(t, ldr.HasLoaded(), false)
	test.ExpectEquality(t, ldr.ShortName(), "kernel")

	test.ExpectSuccess(t, ldr.Load())
	test.ExpectSuccess(t, ldr.HasLoaded())
	test.ExpectEquality(t, len(ldr.Data), len(img))
	for i, d := range img {
		test.ExpectEquality(t, ldr.Data[i], d)
	}
	test.ExpectEquality(t, ldr.Hash, fmt.Sprintf("%x", sha1.Sum(img)))

	// a second load is a no-op
	test.ExpectSuccess(t, ldr.Load())
}

func TestLoadFailures(t *testing.T) {
	// a file that doesn't exist
	ldr := kernelimage.NewLoader(filepath.Join(t.TempDir(), "no_such_kernel.bin"))
	err := ldr.Load()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, errors.Is(err, kernelimage.ErrNotFound))
	test.ExpectEquality(t, ldr.HasLoaded(), false)

	// an empty file
	fn := filepath.Join(t.TempDir(), "empty.bin")
	test.DemandSuccess(t, os.WriteFile(fn, nil, 0644))
	ldr = kernelimage.NewLoader(fn)
	test.ExpectFailure(t, ldr.Load())

	// an image too large for the load area
	fn = filepath.Join(t.TempDir(), "oversize.bin")
	test.DemandSuccess(t, os.WriteFile(fn, make([]byte, kernelimage.MaxSize+1), 0644))
	ldr = kernelimage.NewLoader(fn)
	err = ldr.Load()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, errors.Is(err, kernelimage.ErrTooLarge))
	test.ExpectEquality(t, ldr.HasLoaded(), false)
}

func TestHashValidation(t *testing.T) {
	img := []byte{0x78, 0xd8, 0x4c, 0x02, 0x40}
	fn := filepath.Join(t.TempDir(), "kernel.bin")
	test.DemandSuccess(t, os.WriteFile(fn, img, 0644))

	// a preset hash that matches the data is accepted
	ldr := kernelimage.NewLoader(fn)
	ldr.Hash = fmt.Sprintf("%x", sha1.Sum(img))
	test.ExpectSuccess(t, ldr.Load())

	// a preset hash that doesn't match is rejected
	ldr = kernelimage.NewLoader(fn)
	ldr.Hash = "0000000000000000000000000000000000000000"
	test.ExpectFailure(t, ldr.Load())
}

func TestNewLoaderFromData(t *testing.T) {
	img := []byte{0x78, 0xd8, 0x4c, 0x02, 0x40}
	ldr, err := kernelimage.NewLoaderFromData("crafted", img)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, ldr.HasLoaded())
	test.ExpectEquality(t, ldr.Filename, "crafted")
	test.ExpectEquality(t, ldr.Hash, fmt.Sprintf("%x", sha1.Sum(img)))

	// the loader holds a copy of the data
	img[0] = 0x00
	test.ExpectEquality(t, ldr.Data[0], uint8(0x78))

	_, err = kernelimage.NewLoaderFromData("empty", nil)
	test.ExpectFailure(t, err)

	_, err = kernelimage.NewLoaderFromData("oversize", make([]byte, kernelimage.MaxSize+1))
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, errors.Is(err, kernelimage.ErrTooLarge))
}
