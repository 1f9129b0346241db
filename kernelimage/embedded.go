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
	"fmt"
	"slices"
)

// name given to the Loader returned by Embedded()
const embeddedName = "demo"

// Embedded returns a Loader for the demonstration kernel built into the
// binary, for use when no image is available on disk. The returned Loader
// is already loaded.
func Embedded() Loader {
	data := slices.Clone(demo)
	return Loader{
		Filename: embeddedName,
		Hash:     fmt.Sprintf("%x", sha1.Sum(data)),
		Data:     data,
	}
}

// the demonstration kernel. it initialises the stack and interrupt vector,
// clears a region of screen memory and then loops, echoing keyboard input
// and counting frames. the hardware it addresses beyond the adapter block
// is imaginary but the program gives the boot sequence a realistic image
// to deliver.
var demo = []uint8{
	0x78, // $4000  sei
	0xd8, // $4001  cld

	0xa2, 0xff, // $4002  ldx #$ff
	0x9a,       //       $4004  txs

	// hand-off acknowledgement to the adapter
	0xa9, 0x01, //       $4005  lda #$01
	0x8d, 0x00, 0xc1, // $4007  sta $c100

	// clear system status and error flags
	0xa9, 0x00, //       $400a  lda #$00
	0x8d, 0x00, 0x02, // $400c  sta $0200
	0x8d, 0x01, 0x02, // $400f  sta $0201

	// interrupt vector aimed at the handler below
	0xa9, 0x4e, //       $4012  lda #$4e
	0x8d, 0xfe, 0xff, // $4014  sta $fffe
	0xa9, 0x40, //       $4017  lda #$40
	0x8d, 0xff, 0xff, // $4019  sta $ffff

	// video initialisation
	0xa9, 0x80, //       $401c  lda #$80
	0x8d, 0x00, 0xd0, // $401e  sta $d000

	// clear 1KB of screen memory with the space character
	0xa9, 0x20, // $4021  lda #$20
	0xa2, 0x00, // $4023  ldx #$00
	0xa0, 0x00, // $4025  ldy #$00

	0x99, 0x00, 0x30, // $4027  sta $3000,y
	0xc8,       //       $402a  iny
	0xd0, 0xfa, //       $402b  bne $4027
	0xee, 0x29, 0x40, // $402d  inc $4029    ; next page of the sta above
	0xe8,       //       $4030  inx
	0xe0, 0x04, //       $4031  cpx #$04
	0xd0, 0xf2, //       $4033  bne $4027

	0x58, // $4035  cli

	// main loop: echo keyboard input, count frames
	0xad, 0x00, 0xc0, // $4036  lda $c000    ; keyboard input
	0xf0, 0x06, //       $4039  beq $4041
	0x8d, 0x00, 0x30, // $403b  sta $3000
	0xee, 0x01, 0x30, // $403e  inc $3001
	0xad, 0x01, 0xd0, // $4041  lda $d001    ; video status
	0x29, 0x80, //       $4044  and #$80
	0xf0, 0x03, //       $4046  beq $404b
	0xee, 0x02, 0x02, // $4048  inc $0202    ; frame counter
	0x4c, 0x36, 0x40, // $404b  jmp $4036

	// interrupt handler, reached through the vector above
	0x48,       //       $404e  pha
	0x8a,       //       $404f  txa
	0x48,       //       $4050  pha
	0x98,       //       $4051  tya
	0x48,       //       $4052  pha
	0xad, 0x00, 0xd5, // $4053  lda $d500    ; interrupt source
	0x29, 0x01, //       $4056  and #$01
	0xf0, 0x03, //       $4058  beq $405d
	0xee, 0x03, 0x02, // $405a  inc $0203    ; timer counter
	0x68,       //       $405d  pla
	0xa8,       //       $405e  tay
	0x68,       //       $405f  pla
	0xaa,       //       $4060  tax
	0x68,       //       $4061  pla
	0x40,       //       $4062  rti

	// NOP padding to round out the image
	0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea,
	0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea,
	0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea,
	0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea,
	0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea,
	0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea,
	0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea,
	0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea,
}
