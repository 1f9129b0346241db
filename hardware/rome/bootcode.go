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

package rome

// Loader is the 6502 program served from the bottom of the ROM window. The
// host lands here from the emulated reset vector and executes it in place.
//
// The program polls the kernel status address and copies bytes from the
// kernel data address into host RAM, starting at LoadAddress. When the
// status address reads zero it jumps to LoadAddress, handing the machine to
// the freshly loaded kernel.
var Loader = []uint8{
	0x78, // $e000  sei
	0xd8, // $e001  cld

	// zero page pointer at $00/$01 aimed at the load address
	0xa9, 0x00, // $e002  lda #$00
	0x85, 0x00, // $e004  sta $00
	0xa9, 0x40, // $e006  lda #$40
	0x85, 0x01, // $e008  sta $01
	0xa0, 0x00, // $e00a  ldy #$00

	0xad, 0x00, 0xe1, // $e00c  lda $e100    ; poll kernel status
	0xf0, 0x0d, //       $e00f  beq $e01e    ; zero means done
	0xad, 0x01, 0xe1, // $e011  lda $e101    ; next kernel byte
	0x91, 0x00, //       $e014  sta ($00),y
	0xc8,       //       $e016  iny
	0xd0, 0xf3, //       $e017  bne $e00c
	0xe6, 0x01, //       $e019  inc $01      ; next page
	0x4c, 0x0c, 0xe0, // $e01b  jmp $e00c

	0x4c, 0x00, 0x40, // $e01e  jmp $4000    ; enter the kernel

	// NOP padding to the end of the loader's reserved space
	0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea,
	0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea,
	0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea,
	0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea,
	0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea,
	0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea,
	0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea,
	0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea,
}
