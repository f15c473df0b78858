package dawg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"

	"github.com/domino14/crosshatch/tilemapping"
)

// MagicNumber identifies a serialized DAWG file.
const MagicNumber = "hdwg"

// FormatVersion is the current binary format version. Any other version
// byte is rejected outright; there is no best-effort parsing of unknown
// formats.
const FormatVersion = 1

// Serialized layout, big-endian, in order:
//
//	magic "hdwg" (4 bytes)
//	format version (1 byte)
//	lexicon name (1-byte length + bytes)
//	alphabet (uint32 count, then the runes as uint32s)
//	letter sets (uint32 count, then uint64s)
//	node arena (uint32 count, then uint32s)
//	xxhash64 checksum of all preceding bytes (uint64)

var (
	ErrBadMagic    = errors.New("magic number does not match a dawg file")
	ErrBadVersion  = errors.New("unknown dawg format version")
	ErrBadChecksum = errors.New("dawg checksum mismatch")
	ErrTruncated   = errors.New("dawg file is truncated")
)

// A LoadError wraps any failure to load a dictionary: a missing file,
// truncated data, a bad magic number, an unknown format version, or a
// checksum mismatch. The engine cannot operate without its dictionary,
// so callers should treat this as fatal.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("could not load dictionary %q: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads a serialized DAWG from the reader. The name is only used
// in error messages and logging.
func Load(r io.Reader, name string) (*SimpleDawg, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}
	d, err := parse(raw)
	if err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}
	log.Debug().Str("lexicon", d.lexiconName).
		Int("nodeWords", len(d.nodes)).
		Int("letterSets", len(d.letterSets)).
		Msg("loaded dawg")
	return d, nil
}

// LoadFromFile reads a serialized DAWG from the filesystem.
func LoadFromFile(path string) (*SimpleDawg, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Name: path, Err: err}
	}
	defer f.Close()
	return Load(f, path)
}

func parse(raw []byte) (*SimpleDawg, error) {
	if len(raw) < len(MagicNumber)+1+8 {
		return nil, ErrTruncated
	}
	if string(raw[:len(MagicNumber)]) != MagicNumber {
		return nil, ErrBadMagic
	}
	// The checksum covers everything before its own 8 bytes.
	body := raw[:len(raw)-8]
	wantSum := binary.BigEndian.Uint64(raw[len(raw)-8:])
	if xxhash.Sum64(body) != wantSum {
		return nil, ErrBadChecksum
	}
	rd := bytes.NewReader(body[len(MagicNumber):])

	var version uint8
	if err := binary.Read(rd, binary.BigEndian, &version); err != nil {
		return nil, ErrTruncated
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, version)
	}

	var lexNameLen uint8
	if err := binary.Read(rd, binary.BigEndian, &lexNameLen); err != nil {
		return nil, ErrTruncated
	}
	lexName := make([]byte, lexNameLen)
	if _, err := io.ReadFull(rd, lexName); err != nil {
		return nil, ErrTruncated
	}

	var alphabetSize uint32
	if err := binary.Read(rd, binary.BigEndian, &alphabetSize); err != nil {
		return nil, ErrTruncated
	}
	if alphabetSize > tilemapping.MaxAlphabetSize {
		return nil, fmt.Errorf("alphabet size %d too large", alphabetSize)
	}
	alphabetArr := make([]uint32, alphabetSize)
	if err := binary.Read(rd, binary.BigEndian, &alphabetArr); err != nil {
		return nil, ErrTruncated
	}

	var letterSetSize uint32
	if err := binary.Read(rd, binary.BigEndian, &letterSetSize); err != nil {
		return nil, ErrTruncated
	}
	letterSets := make([]tilemapping.LetterSet, letterSetSize)
	if err := binary.Read(rd, binary.BigEndian, &letterSets); err != nil {
		return nil, ErrTruncated
	}

	var nodeSize uint32
	if err := binary.Read(rd, binary.BigEndian, &nodeSize); err != nil {
		return nil, ErrTruncated
	}
	nodes := make([]uint32, nodeSize)
	if err := binary.Read(rd, binary.BigEndian, &nodes); err != nil {
		return nil, ErrTruncated
	}
	if rd.Len() != 0 {
		return nil, fmt.Errorf("%d bytes of trailing garbage", rd.Len())
	}
	if nodeSize < 2 {
		return nil, ErrTruncated
	}

	return &SimpleDawg{
		nodes:       nodes,
		letterSets:  letterSets,
		alphabet:    tilemapping.FromSlice(alphabetArr),
		lexiconName: string(lexName),
	}, nil
}

// WriteTo serializes the DAWG to the writer in the versioned binary
// format, checksum included.
func (d *SimpleDawg) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString(MagicNumber)
	buf.WriteByte(FormatVersion)
	if len(d.lexiconName) > 255 {
		return 0, errors.New("lexicon name too long")
	}
	buf.WriteByte(byte(len(d.lexiconName)))
	buf.WriteString(d.lexiconName)

	alphabetArr := d.alphabet.Serialize()
	binary.Write(&buf, binary.BigEndian, uint32(len(alphabetArr)))
	binary.Write(&buf, binary.BigEndian, alphabetArr)
	binary.Write(&buf, binary.BigEndian, uint32(len(d.letterSets)))
	binary.Write(&buf, binary.BigEndian, d.letterSets)
	binary.Write(&buf, binary.BigEndian, uint32(len(d.nodes)))
	binary.Write(&buf, binary.BigEndian, d.nodes)

	binary.Write(&buf, binary.BigEndian, xxhash.Sum64(buf.Bytes()))
	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// Save writes the DAWG to a file.
func (d *SimpleDawg) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := d.WriteTo(f); err != nil {
		return err
	}
	log.Info().Str("path", path).Str("lexicon", d.lexiconName).Msg("saved dawg")
	return nil
}
