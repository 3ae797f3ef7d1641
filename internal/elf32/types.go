// Package elf32 reads ELF-like 32-bit binary object files: a fixed
// header, program/section header tables and symbol tables, with
// per-field endianness correction against the host byte order.
package elf32

import "fmt"

// Compiled-in structure sizes. Declared entry sizes in a file must match
// these exactly for the tables to be trusted.
const (
	HeaderSize     = 52
	ProgHeaderSize = 32
	SectHeaderSize = 40
	SymSize        = 16
)

// MaxPathLen bounds the accepted object file path length.
const MaxPathLen = 255

// Magic is the 4-byte identification signature.
var Magic = [4]byte{0x7f, 'E', 'L', 'F'}

// Identification indexes into Header.Ident.
const (
	idxClass      = 4
	idxData       = 5
	idxVersion    = 6
	idxOSABI      = 7
	idxABIVersion = 8
)

// Class is the file's word-size marker.
type Class byte

const (
	ClassNone Class = 0
	Class32   Class = 1
	Class64   Class = 2
)

func (c Class) String() string {
	switch c {
	case Class32:
		return "32-bit"
	case Class64:
		return "64-bit"
	default:
		return fmt.Sprintf("invalid class (%d)", byte(c))
	}
}

// Encoding is the file's declared data encoding (byte order).
type Encoding byte

const (
	EncodingNone Encoding = 0
	EncodingLSB  Encoding = 1
	EncodingMSB  Encoding = 2
)

func (e Encoding) String() string {
	switch e {
	case EncodingLSB:
		return "little-endian"
	case EncodingMSB:
		return "big-endian"
	default:
		return fmt.Sprintf("invalid encoding (%d)", byte(e))
	}
}

// FileType is the object file type.
type FileType uint16

const (
	TypeNone FileType = 0
	TypeRel  FileType = 1
	TypeExec FileType = 2
	TypeDyn  FileType = 3
	TypeCore FileType = 4
)

func (t FileType) String() string {
	switch t {
	case TypeNone:
		return "no file type"
	case TypeRel:
		return "relocatable"
	case TypeExec:
		return "executable"
	case TypeDyn:
		return "shared object"
	case TypeCore:
		return "core"
	default:
		return fmt.Sprintf("file type %d", uint16(t))
	}
}

// Header is the fixed-size file header.
type Header struct {
	Ident     [16]byte
	Type      FileType
	Machine   uint16
	Version   uint32
	Entry     uint32
	PhOff     uint32
	ShOff     uint32
	Flags     uint32
	EhSize    uint16
	PhEntSize uint16
	PhNum     uint16
	ShEntSize uint16
	ShNum     uint16
	ShStrNdx  uint16
}

// Class returns the word-size marker from the identification bytes.
func (h *Header) Class() Class { return Class(h.Ident[idxClass]) }

// Encoding returns the declared data encoding.
func (h *Header) Encoding() Encoding { return Encoding(h.Ident[idxData]) }

// ProgType classifies a program header entry.
type ProgType uint32

const (
	ProgNull    ProgType = 0
	ProgLoad    ProgType = 1
	ProgDynamic ProgType = 2
	ProgInterp  ProgType = 3
	ProgNote    ProgType = 4
	ProgShLib   ProgType = 5
	ProgPhdr    ProgType = 6
)

func (t ProgType) String() string {
	switch t {
	case ProgNull:
		return "NULL"
	case ProgLoad:
		return "LOAD"
	case ProgDynamic:
		return "DYNAMIC"
	case ProgInterp:
		return "INTERP"
	case ProgNote:
		return "NOTE"
	case ProgShLib:
		return "SHLIB"
	case ProgPhdr:
		return "PHDR"
	default:
		return fmt.Sprintf("type 0x%08x", uint32(t))
	}
}

// ProgHeader is one program header table entry.
type ProgHeader struct {
	Type   ProgType
	Offset uint32
	Vaddr  uint32
	Paddr  uint32
	FileSz uint32
	MemSz  uint32
	Flags  uint32
	Align  uint32
}

// SectType classifies a section header entry.
type SectType uint32

const (
	SectNull     SectType = 0
	SectProgBits SectType = 1
	SectSymTab   SectType = 2
	SectStrTab   SectType = 3
	SectRela     SectType = 4
	SectHash     SectType = 5
	SectDynamic  SectType = 6
	SectNote     SectType = 7
	SectNoBits   SectType = 8
	SectRel      SectType = 9
	SectShLib    SectType = 10
	SectDynSym   SectType = 11
)

func (t SectType) String() string {
	switch t {
	case SectNull:
		return "NULL"
	case SectProgBits:
		return "PROGBITS"
	case SectSymTab:
		return "SYMTAB"
	case SectStrTab:
		return "STRTAB"
	case SectRela:
		return "RELA"
	case SectHash:
		return "HASH"
	case SectDynamic:
		return "DYNAMIC"
	case SectNote:
		return "NOTE"
	case SectNoBits:
		return "NOBITS"
	case SectRel:
		return "REL"
	case SectShLib:
		return "SHLIB"
	case SectDynSym:
		return "DYNSYM"
	default:
		return fmt.Sprintf("type 0x%08x", uint32(t))
	}
}

// Section header flags.
const (
	SectFlagWrite uint32 = 0x1
	SectFlagAlloc uint32 = 0x2
	SectFlagExec  uint32 = 0x4
)

// SectHeader is one section header table entry.
type SectHeader struct {
	Name      uint32 // offset into the section name string table
	Type      SectType
	Flags     uint32
	Addr      uint32
	Offset    uint32
	Size      uint32
	Link      uint32
	Info      uint32
	AddrAlign uint32
	EntSize   uint32
}

// Reserved section indexes used by symbols.
const (
	SymShnUndef     uint16 = 0
	SymShnLoReserve uint16 = 0xff00
	SymShnAbs       uint16 = 0xfff1
	SymShnCommon    uint16 = 0xfff2
)

// SymBind is a symbol's binding, the upper nibble of Sym.Info.
type SymBind byte

const (
	BindLocal  SymBind = 0
	BindGlobal SymBind = 1
	BindWeak   SymBind = 2
)

func (b SymBind) String() string {
	switch b {
	case BindLocal:
		return "LOCAL"
	case BindGlobal:
		return "GLOBAL"
	case BindWeak:
		return "WEAK"
	default:
		return fmt.Sprintf("bind %d", byte(b))
	}
}

// SymType is a symbol's type, the lower nibble of Sym.Info.
type SymType byte

const (
	SymNone    SymType = 0
	SymObject  SymType = 1
	SymFunc    SymType = 2
	SymSection SymType = 3
	SymFile    SymType = 4
)

func (t SymType) String() string {
	switch t {
	case SymNone:
		return "NOTYPE"
	case SymObject:
		return "OBJECT"
	case SymFunc:
		return "FUNC"
	case SymSection:
		return "SECTION"
	case SymFile:
		return "FILE"
	default:
		return fmt.Sprintf("type %d", byte(t))
	}
}

// Sym is one symbol table entry.
type Sym struct {
	Name  uint32 // offset into the linked string table
	Value uint32
	Size  uint32
	Info  byte
	Other byte
	Shndx uint16 // defining section index, or a reserved sentinel
}

// Bind returns the symbol binding.
func (s *Sym) Bind() SymBind { return SymBind(s.Info >> 4) }

// Type returns the symbol type.
func (s *Sym) Type() SymType { return SymType(s.Info & 0xf) }

// SectionRef names the defining-section reference of a symbol, decoding
// the reserved sentinel values.
func (s *Sym) SectionRef() string {
	switch {
	case s.Shndx == SymShnUndef:
		return "UND"
	case s.Shndx == SymShnAbs:
		return "ABS"
	case s.Shndx == SymShnCommon:
		return "COM"
	case s.Shndx >= SymShnLoReserve:
		return fmt.Sprintf("reserved 0x%04x", s.Shndx)
	default:
		return fmt.Sprintf("%d", s.Shndx)
	}
}

// machineName names the more common machine IDs seen in embedded
// toolchains.
func machineName(id uint16) string {
	switch id {
	case 0:
		return "no machine"
	case 2:
		return "SPARC"
	case 3:
		return "Intel 80386"
	case 4:
		return "Motorola 68000"
	case 8:
		return "MIPS I"
	case 20:
		return "PowerPC"
	case 40:
		return "ARM"
	case 42:
		return "Hitachi SH"
	case 44:
		return "Siemens TriCore"
	case 47:
		return "Hitachi H8S"
	case 53:
		return "Motorola M68HC12"
	case 70:
		return "Motorola MC68HC08"
	case 71:
		return "Motorola MC68HC05"
	case 83:
		return "Atmel AVR"
	case 88:
		return "Renesas M32R"
	case 93:
		return "Arc"
	case 105:
		return "TI MSP430"
	case 183:
		return "ARM AArch64"
	case 243:
		return "RISC-V"
	default:
		return fmt.Sprintf("machine %d", id)
	}
}
