package mason

import (
	"compress/gzip"
	"encoding/binary"
	"io"

	"github.com/samber/oops"

	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
	"github.com/zgrow/spacegame-sub000/pkg/logger"
)

// XPCell is one REXPaint cell: a code point and its colors
type XPCell struct {
	Ch     uint32
	Fg, Bg [3]uint8
}

// XPLayer is one REXPaint layer, cells stored column by column
type XPLayer struct {
	Width, Height int
	Cells         []XPCell
}

// At returns the cell at x, y
func (l *XPLayer) At(x, y int) XPCell {
	return l.Cells[x*l.Height+y]
}

// XPFile is a decoded .xp image
type XPFile struct {
	Version int32
	Layers  []XPLayer
}

// maxXPSide bounds the layer size read from a file
const maxXPSide = 4096

// ReadXP decodes a gzipped REXPaint image
func ReadXP(r io.Reader) (*XPFile, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, oops.In("mason").Wrapf(err, "open xp stream")
	}
	defer zr.Close()

	var header struct {
		Version int32
		Layers  int32
	}
	if err := binary.Read(zr, binary.LittleEndian, &header); err != nil {
		return nil, oops.In("mason").Wrapf(err, "read xp header")
	}
	if header.Layers < 0 || header.Layers > 16 {
		return nil, oops.In("mason").Errorf("xp file claims %d layers", header.Layers)
	}
	file := &XPFile{Version: header.Version}
	for i := int32(0); i < header.Layers; i++ {
		var dims struct{ Width, Height int32 }
		if err := binary.Read(zr, binary.LittleEndian, &dims); err != nil {
			return nil, oops.In("mason").With("layer", i).Wrapf(err, "read layer size")
		}
		if dims.Width <= 0 || dims.Height <= 0 || dims.Width > maxXPSide || dims.Height > maxXPSide {
			return nil, oops.In("mason").With("layer", i).Errorf("bad layer size %dx%d", dims.Width, dims.Height)
		}
		layer := XPLayer{Width: int(dims.Width), Height: int(dims.Height)}
		layer.Cells = make([]XPCell, layer.Width*layer.Height)
		for c := range layer.Cells {
			if err := binary.Read(zr, binary.LittleEndian, &layer.Cells[c]); err != nil {
				return nil, oops.In("mason").With("layer", i).Wrapf(err, "read cell %d", c)
			}
		}
		file.Layers = append(file.Layers, layer)
	}
	return file, nil
}

// LoadXP reads a single-layer REXPaint map as deck 0. The painted characters
// follow the JSON tilemap: '#' wall, '.' and '-' floor, '<' and '>' stairway,
// '=' floor with a door.
func LoadXP(r io.Reader) (*Blueprint, error) {
	file, err := ReadXP(r)
	if err != nil {
		return nil, err
	}
	if len(file.Layers) != 1 {
		return nil, oops.In("mason").With("layers", len(file.Layers)).Wrap(ErrMultiLayer)
	}
	layer := &file.Layers[0]
	bp := &Blueprint{Model: world.NewModel()}
	level := world.NewMap(layer.Width, layer.Height)
	for y := 0; y < layer.Height; y++ {
		for x := 0; x < layer.Width; x++ {
			switch ch := layer.At(x, y).Ch; ch {
			case ' ', 0:
				level.SetTile(x, y, world.Vacuum)
			case '#':
				level.SetTile(x, y, world.Wall)
			case '-', '.':
				level.SetTile(x, y, world.Floor)
			case '<', '>':
				level.SetTile(x, y, world.Stairway)
			case '=':
				level.SetTile(x, y, world.Floor)
				bp.Doors = append(bp.Doors, world.NewPosition(x, y, 0))
			default:
				logger.For("mason").WithField("x", x).WithField("y", y).Warnf("unrecognized REXPaint tile %d", ch)
			}
		}
	}
	level.UpdateTilemaps()
	bp.Model.AddLevel(level)
	return bp, nil
}
