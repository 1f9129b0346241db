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

package kernelimage

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/softlatch/mia/hardware/rome"
)

// MaxSize is the largest kernel image the boot sequence can deliver: the
// span of host RAM above the load address.
const MaxSize = 0x10000 - rome.LoadAddress

// Sentinal errors returned by the Load() function.
var (
	ErrNotFound = errors.New("image not found")
	ErrTooLarge = errors.New("image too large")
)

// FileExtensions is the list of file extensions recognised by the
// kernelimage package.
var FileExtensions = [...]string{".bin", ".rom", ".img"}

// Loader is used to specify the kernel image to use when attaching to the
// adapter.
type Loader struct {
	// filename of the kernel image to load
	Filename string

	// expected hash of the image. the empty string indicates that the hash
	// is unknown and need not be validated. after a load operation the
	// field holds the hash of the loaded data
	Hash string

	// copy of the loaded data. subsequent calls to Load() do nothing once
	// this field is filled
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
//
// The image data is not read until Load() is called.
func NewLoader(filename string) Loader {
	return Loader{Filename: filename}
}

// NewLoaderFromData is the preferred method of initialisation when the
// image bytes are already in memory. The name argument stands in for a
// filename in logs and summaries.
func NewLoaderFromData(name string, data []byte) (Loader, error) {
	if len(data) == 0 {
		return Loader{}, fmt.Errorf("kernelimage: %s: no data", name)
	}
	if len(data) > MaxSize {
		return Loader{}, fmt.Errorf("kernelimage: %s: %w (%d bytes, maximum is %d)", name, ErrTooLarge, len(data), MaxSize)
	}

	data = slices.Clone(data)
	return Loader{
		Filename: name,
		Hash:     fmt.Sprintf("%x", sha1.Sum(data)),
		Data:     data,
	}, nil
}

// ShortName returns a shortened version of the loader's filename, with the
// path and extension removed.
func (ldr Loader) ShortName() string {
	sn := filepath.Base(ldr.Filename)
	return strings.TrimSuffix(sn, filepath.Ext(sn))
}

// HasLoaded returns true if Load() has been successfully called.
func (ldr Loader) HasLoaded() bool {
	return len(ldr.Data) > 0
}

// Load the kernel image data. Loader filenames with a valid scheme will use
// that method to load the data. Currently supported schemes are HTTP and
// local files.
func (ldr *Loader) Load() error {
	if len(ldr.Data) > 0 {
		return nil
	}

	scheme := "file"

	u, err := url.Parse(ldr.Filename)
	if err == nil {
		scheme = u.Scheme
	}

	switch scheme {
	case "http", "https":
		resp, err := http.Get(ldr.Filename)
		if err != nil {
			return fmt.Errorf("kernelimage: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("kernelimage: %s: %s", ldr.Filename, resp.Status)
		}

		ldr.Data, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("kernelimage: %w", err)
		}

	case "file", "":
		ldr.Data, err = os.ReadFile(ldr.Filename)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("kernelimage: %s: %w", ldr.Filename, ErrNotFound)
			}
			return fmt.Errorf("kernelimage: %w", err)
		}

	default:
		return fmt.Errorf("kernelimage: unsupported URL scheme (%s)", scheme)
	}

	if len(ldr.Data) == 0 {
		return fmt.Errorf("kernelimage: %s: file is empty", ldr.Filename)
	}
	if sz := len(ldr.Data); sz > MaxSize {
		ldr.Data = nil
		return fmt.Errorf("kernelimage: %s: %w (%d bytes, maximum is %d)", ldr.Filename, ErrTooLarge, sz, MaxSize)
	}

	hash := fmt.Sprintf("%x", sha1.Sum(ldr.Data))
	if ldr.Hash != "" && ldr.Hash != hash {
		return fmt.Errorf("kernelimage: %s: unexpected hash value", ldr.Filename)
	}
	ldr.Hash = hash

	return nil
}
