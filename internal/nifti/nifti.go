// Package nifti reads NIfTI-1 volumes (.nii and .nii.gz single-file form)
// into the viewer's volume model.
package nifti

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"mpr-viewer/internal/volume"
)

const headerSize = 348

// NIfTI-1 datatype codes.
const (
	typeUint8   = 2
	typeInt16   = 4
	typeInt32   = 8
	typeFloat32 = 16
	typeFloat64 = 64
	typeInt8    = 256
	typeUint16  = 512
)

// Header carries the NIfTI-1 fields the viewer keeps around. The affine
// rows are retained as opaque spatial metadata; the viewer works entirely
// in volume-index space.
type Header struct {
	Dim      [8]int16
	Datatype int16
	Bitpix   int16
	PixDim   [8]float32
	SclSlope float32
	SclInter float32
	Srow     [3][4]float32
	Magic    string
}

// NDim returns the number of dimensions declared by the file.
func (h *Header) NDim() int { return int(h.Dim[0]) }

// Load reads a NIfTI-1 file from disk. Gzip-compressed files are detected
// by their magic bytes, whatever the extension, and decompressed
// transparently. On any failure the returned volume is nil; a file is never
// partially loaded.
func Load(path string) (*volume.Volume, *Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open volume: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var r io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to decompress %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	vol, hdr, err := Read(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return vol, hdr, nil
}

// Read parses a NIfTI-1 stream. Four-dimensional files contribute only
// their first time point; fewer than three spatial dimensions is an error.
func Read(r io.Reader) (*volume.Volume, *Header, error) {
	raw := make([]byte, headerSize)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, nil, fmt.Errorf("truncated header: %w", err)
	}

	// sizeof_hdr doubles as the endianness probe.
	var order binary.ByteOrder = binary.LittleEndian
	if order.Uint32(raw[0:4]) != headerSize {
		order = binary.BigEndian
		if order.Uint32(raw[0:4]) != headerSize {
			return nil, nil, fmt.Errorf("not a NIfTI-1 file (sizeof_hdr != %d)", headerSize)
		}
	}

	hdr := parseHeader(raw, order)

	switch hdr.Magic {
	case "n+1":
	case "ni1":
		return nil, nil, fmt.Errorf("detached .hdr/.img pairs are not supported")
	default:
		return nil, nil, fmt.Errorf("not a NIfTI-1 file (bad magic %q)", hdr.Magic)
	}

	if hdr.NDim() < 3 {
		return nil, nil, fmt.Errorf("volume has %d dimensions, need at least 3", hdr.NDim())
	}
	nx, ny, nz := int(hdr.Dim[1]), int(hdr.Dim[2]), int(hdr.Dim[3])
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, nil, fmt.Errorf("invalid volume dimensions (%d, %d, %d)", nx, ny, nz)
	}

	bytesPer, ok := bytesPerVoxel(hdr.Datatype)
	if !ok {
		return nil, nil, fmt.Errorf("unsupported NIfTI datatype %d", hdr.Datatype)
	}

	// vox_offset is stored as a float32 for historical reasons.
	voxOffset := int64(math.Float32frombits(order.Uint32(raw[108:112])))
	if voxOffset < headerSize {
		return nil, nil, fmt.Errorf("invalid vox_offset %d", voxOffset)
	}
	if skip := voxOffset - headerSize; skip > 0 {
		if _, err := io.CopyN(io.Discard, r, skip); err != nil {
			return nil, nil, fmt.Errorf("truncated file before voxel data: %w", err)
		}
	}

	n := nx * ny * nz
	buf := make([]byte, n*bytesPer)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, nil, fmt.Errorf("truncated voxel data: %w", err)
	}

	data := decodeVoxels(buf, hdr.Datatype, order, n)

	// scl_slope of zero means "no scaling stored", per the NIfTI spec.
	slope, inter := float64(hdr.SclSlope), float64(hdr.SclInter)
	if slope != 0 && (slope != 1 || inter != 0) {
		for i := range data {
			data[i] = data[i]*slope + inter
		}
	}

	vol, err := volume.New(data, nx, ny, nz)
	if err != nil {
		return nil, nil, err
	}
	return vol, hdr, nil
}

func parseHeader(raw []byte, order binary.ByteOrder) *Header {
	hdr := &Header{
		Datatype: int16(order.Uint16(raw[70:72])),
		Bitpix:   int16(order.Uint16(raw[72:74])),
		SclSlope: math.Float32frombits(order.Uint32(raw[112:116])),
		SclInter: math.Float32frombits(order.Uint32(raw[116:120])),
	}
	for i := 0; i < 8; i++ {
		hdr.Dim[i] = int16(order.Uint16(raw[40+2*i : 42+2*i]))
		hdr.PixDim[i] = math.Float32frombits(order.Uint32(raw[76+4*i : 80+4*i]))
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			off := 280 + 16*row + 4*col
			hdr.Srow[row][col] = math.Float32frombits(order.Uint32(raw[off : off+4]))
		}
	}
	hdr.Magic = strings.TrimRight(string(raw[344:348]), "\x00")
	return hdr
}

func bytesPerVoxel(datatype int16) (int, bool) {
	switch datatype {
	case typeUint8, typeInt8:
		return 1, true
	case typeInt16, typeUint16:
		return 2, true
	case typeInt32, typeFloat32:
		return 4, true
	case typeFloat64:
		return 8, true
	default:
		return 0, false
	}
}

func decodeVoxels(buf []byte, datatype int16, order binary.ByteOrder, n int) []float64 {
	data := make([]float64, n)
	switch datatype {
	case typeUint8:
		for i := 0; i < n; i++ {
			data[i] = float64(buf[i])
		}
	case typeInt8:
		for i := 0; i < n; i++ {
			data[i] = float64(int8(buf[i]))
		}
	case typeInt16:
		for i := 0; i < n; i++ {
			data[i] = float64(int16(order.Uint16(buf[2*i:])))
		}
	case typeUint16:
		for i := 0; i < n; i++ {
			data[i] = float64(order.Uint16(buf[2*i:]))
		}
	case typeInt32:
		for i := 0; i < n; i++ {
			data[i] = float64(int32(order.Uint32(buf[4*i:])))
		}
	case typeFloat32:
		for i := 0; i < n; i++ {
			data[i] = float64(math.Float32frombits(order.Uint32(buf[4*i:])))
		}
	case typeFloat64:
		for i := 0; i < n; i++ {
			data[i] = math.Float64frombits(order.Uint64(buf[8*i:]))
		}
	}
	return data
}

// SupportedExtensions returns the file extensions the loader accepts.
func SupportedExtensions() []string {
	return []string{".nii", ".gz"}
}
