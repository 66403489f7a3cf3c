package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/primgeom/pkg/errors"
	primio "github.com/matzehuels/primgeom/pkg/io"
)

// BatchFile is the on-disk form of a batch:
//
//	{
//	  "options": {"workers": 4},
//	  "requests": [
//	    {"id": "c1", "kind": "node", "name": "metal-1-poly-contact",
//	     "node": {"anchor": {"X": 0, "Y": 0}, "size_x": 2000, "size_y": 2000,
//	              "reasonable_cuts_only": true}},
//	    {"kind": "arc", "name": "metal-1",
//	     "arc": {"tail": {"X": 0, "Y": 0}, "head": {"X": 4000, "Y": 0}, "width": 1200}}
//	  ]
//	}
//
// A bare JSON array of requests is accepted as well.
type BatchFile struct {
	Options  Options   `json:"options"`
	Requests []Request `json:"requests"`
}

// ReadBatch decodes a batch file from r and validates every request.
func ReadBatch(r io.Reader) (BatchFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return BatchFile{}, err
	}

	var bf BatchFile
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &bf.Requests)
	} else {
		err = json.Unmarshal(data, &bf)
	}
	if err != nil {
		return BatchFile{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode batch")
	}

	for i := range bf.Requests {
		if err := bf.Requests[i].Validate(); err != nil {
			return BatchFile{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "request %d", i)
		}
	}
	return bf, nil
}

// LoadBatch reads a batch file from path.
func LoadBatch(path string) (BatchFile, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return BatchFile{}, errors.New(errors.ErrCodeFileNotFound, "batch file %s not found", path)
	}
	if err != nil {
		return BatchFile{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadBatch(f)
}

// Entry converts the result into its export form.
func (res Result) Entry() primio.Entry {
	e := primio.Entry{
		ID:     res.Request.ID,
		Kind:   string(res.Request.Kind),
		Name:   res.Request.Name,
		Cached: res.CacheHit,
		Shapes: primio.FromPolygons(res.Polygons),
	}
	if res.Err != nil {
		e.Error = res.Err.Error()
	}
	return e
}
