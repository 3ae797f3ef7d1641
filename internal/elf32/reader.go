package elf32

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"objkit/internal/endian"
)

var (
	ErrState         = errors.New("elf32: operation not valid in current state")
	ErrPathTooLong   = errors.New("elf32: path too long")
	ErrBadMagic      = errors.New("elf32: bad magic")
	ErrBadClass      = errors.New("elf32: unsupported file class")
	ErrBadEncoding   = errors.New("elf32: bad data encoding")
	ErrEntrySize     = errors.New("elf32: table entry size mismatch")
	ErrBadIndex      = errors.New("elf32: index out of range")
	ErrBadNameOffset = errors.New("elf32: name offset out of range")
	ErrNotSymTab     = errors.New("elf32: section is not a symbol table")
	ErrNoBits        = errors.New("elf32: section occupies no file space")
)

// Reader lifecycle. Operations are only valid in the state their doc
// comment names; anything else returns ErrState.
type state int

const (
	stateClosed state = iota
	stateHeaderRead
	stateTablesRead
	stateSectionsLoaded
)

func (s state) String() string {
	switch s {
	case stateClosed:
		return "closed"
	case stateHeaderRead:
		return "header read"
	case stateTablesRead:
		return "tables read"
	case stateSectionsLoaded:
		return "sections loaded"
	default:
		return fmt.Sprintf("state %d", int(s))
	}
}

// Reader reads one object file. The zero value is not usable; call Open.
//
// Field values handed out by the accessors are already corrected to host
// byte order, no matter what encoding the file declares.
type Reader struct {
	path string
	f    *os.File
	st   state

	hdr  Header
	swap bool // declared encoding differs from the host byte order

	progs []ProgHeader
	sects []SectHeader
	data  [][]byte // per-section content, nil until LoadSections
}

// Open opens the object file at path and reads its header. The file
// must carry the magic signature, be of the 32-bit class and declare a
// recognized data encoding.
func Open(path string) (*Reader, error) {
	if len(path) > MaxPathLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrPathTooLong, len(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("elf32: open: %w", err)
	}
	r := &Reader{path: path, f: f}
	if err := r.readHeader(); err != nil {
		f.Close()
		return nil, err
	}
	r.st = stateHeaderRead
	return r, nil
}

// Path returns the path the reader was opened with.
func (r *Reader) Path() string { return r.path }

// Header returns the file header. Valid once Open succeeds.
func (r *Reader) Header() Header { return r.hdr }

// Encoding returns the file's declared byte order.
func (r *Reader) Encoding() endian.Order {
	if r.hdr.Encoding() == EncodingMSB {
		return endian.Big
	}
	return endian.Little
}

func (r *Reader) u16(buf []byte) uint16 {
	v := binary.NativeEndian.Uint16(buf)
	if r.swap {
		v = endian.Swap16(v)
	}
	return v
}

func (r *Reader) u32(buf []byte) uint32 {
	v := binary.NativeEndian.Uint32(buf)
	if r.swap {
		v = endian.Swap32(v)
	}
	return v
}

func (r *Reader) readHeader() error {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r.f, buf[:]); err != nil {
		return fmt.Errorf("elf32: read header: %w", err)
	}
	copy(r.hdr.Ident[:], buf[:16])
	if [4]byte(buf[:4]) != Magic {
		return fmt.Errorf("%w: % x", ErrBadMagic, buf[:4])
	}
	if c := r.hdr.Class(); c != Class32 {
		return fmt.Errorf("%w: %s", ErrBadClass, c)
	}

	var declared endian.Order
	switch r.hdr.Encoding() {
	case EncodingLSB:
		declared = endian.Little
	case EncodingMSB:
		declared = endian.Big
	default:
		return fmt.Errorf("%w: %s", ErrBadEncoding, r.hdr.Encoding())
	}
	r.swap = declared != endian.HostOrder()

	r.hdr.Type = FileType(r.u16(buf[16:]))
	r.hdr.Machine = r.u16(buf[18:])
	r.hdr.Version = r.u32(buf[20:])
	r.hdr.Entry = r.u32(buf[24:])
	r.hdr.PhOff = r.u32(buf[28:])
	r.hdr.ShOff = r.u32(buf[32:])
	r.hdr.Flags = r.u32(buf[36:])
	r.hdr.EhSize = r.u16(buf[40:])
	r.hdr.PhEntSize = r.u16(buf[42:])
	r.hdr.PhNum = r.u16(buf[44:])
	r.hdr.ShEntSize = r.u16(buf[46:])
	r.hdr.ShNum = r.u16(buf[48:])
	r.hdr.ShStrNdx = r.u16(buf[50:])

	if r.hdr.EhSize != HeaderSize {
		return fmt.Errorf("%w: header size %d, want %d", ErrEntrySize, r.hdr.EhSize, HeaderSize)
	}
	return nil
}

// ReadProgramHeaders reads the program header table. Valid after Open,
// before LoadSections.
func (r *Reader) ReadProgramHeaders() error {
	if r.st != stateHeaderRead && r.st != stateTablesRead {
		return fmt.Errorf("%w: read program headers in %s", ErrState, r.st)
	}
	if r.hdr.PhNum == 0 {
		r.progs = nil
		return nil
	}
	if r.hdr.PhEntSize != ProgHeaderSize {
		return fmt.Errorf("%w: program header entry size %d, want %d", ErrEntrySize, r.hdr.PhEntSize, ProgHeaderSize)
	}
	buf := make([]byte, int(r.hdr.PhNum)*ProgHeaderSize)
	if _, err := r.f.ReadAt(buf, int64(r.hdr.PhOff)); err != nil {
		return fmt.Errorf("elf32: read program headers: %w", err)
	}

	r.progs = make([]ProgHeader, r.hdr.PhNum)
	for i := range r.progs {
		e := buf[i*ProgHeaderSize:]
		r.progs[i] = ProgHeader{
			Type:   ProgType(r.u32(e[0:])),
			Offset: r.u32(e[4:]),
			Vaddr:  r.u32(e[8:]),
			Paddr:  r.u32(e[12:]),
			FileSz: r.u32(e[16:]),
			MemSz:  r.u32(e[20:]),
			Flags:  r.u32(e[24:]),
			Align:  r.u32(e[28:]),
		}
	}
	return nil
}

// ReadSectionHeaders reads the section header table and advances the
// reader to the tables-read state. Valid after Open, before
// LoadSections.
func (r *Reader) ReadSectionHeaders() error {
	if r.st != stateHeaderRead && r.st != stateTablesRead {
		return fmt.Errorf("%w: read section headers in %s", ErrState, r.st)
	}
	if r.hdr.ShNum == 0 {
		r.sects = nil
		r.st = stateTablesRead
		return nil
	}
	if r.hdr.ShEntSize != SectHeaderSize {
		return fmt.Errorf("%w: section header entry size %d, want %d", ErrEntrySize, r.hdr.ShEntSize, SectHeaderSize)
	}
	buf := make([]byte, int(r.hdr.ShNum)*SectHeaderSize)
	if _, err := r.f.ReadAt(buf, int64(r.hdr.ShOff)); err != nil {
		return fmt.Errorf("elf32: read section headers: %w", err)
	}

	r.sects = make([]SectHeader, r.hdr.ShNum)
	for i := range r.sects {
		e := buf[i*SectHeaderSize:]
		r.sects[i] = SectHeader{
			Name:      r.u32(e[0:]),
			Type:      SectType(r.u32(e[4:])),
			Flags:     r.u32(e[8:]),
			Addr:      r.u32(e[12:]),
			Offset:    r.u32(e[16:]),
			Size:      r.u32(e[20:]),
			Link:      r.u32(e[24:]),
			Info:      r.u32(e[28:]),
			AddrAlign: r.u32(e[32:]),
			EntSize:   r.u32(e[36:]),
		}
	}
	r.st = stateTablesRead
	return nil
}

// LoadSections reads the content of every section that occupies file
// space. NOBITS sections are skipped; their content stays empty no
// matter what size the header declares. Valid in the tables-read state.
func (r *Reader) LoadSections() error {
	if r.st != stateTablesRead {
		return fmt.Errorf("%w: load sections in %s", ErrState, r.st)
	}
	r.data = make([][]byte, len(r.sects))
	for i, sh := range r.sects {
		if sh.Type == SectNoBits || sh.Size == 0 {
			continue
		}
		buf := make([]byte, sh.Size)
		if _, err := r.f.ReadAt(buf, int64(sh.Offset)); err != nil {
			return fmt.Errorf("elf32: read section %d: %w", i, err)
		}
		r.data[i] = buf
	}
	r.st = stateSectionsLoaded
	return nil
}

// ProgHeaders returns the program header table. Valid once
// ReadProgramHeaders has been called.
func (r *Reader) ProgHeaders() []ProgHeader { return r.progs }

// SectHeaders returns the section header table. Valid in the
// tables-read state or later.
func (r *Reader) SectHeaders() []SectHeader { return r.sects }

// SectionData returns the loaded content of section i. NOBITS sections
// return ErrNoBits. Valid in the sections-loaded state.
func (r *Reader) SectionData(i int) ([]byte, error) {
	if r.st != stateSectionsLoaded {
		return nil, fmt.Errorf("%w: section data in %s", ErrState, r.st)
	}
	if i < 0 || i >= len(r.sects) {
		return nil, fmt.Errorf("%w: section %d of %d", ErrBadIndex, i, len(r.sects))
	}
	if r.sects[i].Type == SectNoBits {
		return nil, fmt.Errorf("%w: section %d", ErrNoBits, i)
	}
	return r.data[i], nil
}

// Close releases the underlying file and returns the reader to the
// closed state. Closing an already closed reader returns ErrState.
func (r *Reader) Close() error {
	if r.st == stateClosed {
		return fmt.Errorf("%w: close in %s", ErrState, r.st)
	}
	r.st = stateClosed
	r.progs, r.sects, r.data = nil, nil, nil
	if err := r.f.Close(); err != nil {
		return fmt.Errorf("elf32: close: %w", err)
	}
	return nil
}
