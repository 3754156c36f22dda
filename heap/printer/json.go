package printer

import (
	"encoding/json"
	"fmt"
	"io"
)

// jsonBlock represents one block in JSON format.
type jsonBlock struct {
	No     int    `json:"no"`
	Status string `json:"status"`
	Prev   string `json:"prev"`
	Begin  string `json:"begin"`
	End    string `json:"end"`
	Size   int    `json:"size"`
}

// jsonReport represents the whole block list in JSON format.
type jsonReport struct {
	Blocks    []jsonBlock `json:"blocks"`
	UsedSize  int         `json:"used_size"`
	FreeSize  int         `json:"free_size"`
	TotalSize int         `json:"total_size"`
}

func writeJSON(w io.Writer, rep Report) error {
	out := jsonReport{
		Blocks:    make([]jsonBlock, 0, len(rep.Rows)),
		UsedSize:  rep.Used,
		FreeSize:  rep.Free,
		TotalSize: rep.Total(),
	}
	for _, r := range rep.Rows {
		out.Blocks = append(out.Blocks, jsonBlock{
			No:     r.No,
			Status: r.Status,
			Prev:   r.Prev,
			Begin:  fmt.Sprintf("0x%08x", r.Begin),
			End:    fmt.Sprintf("0x%08x", r.End),
			Size:   r.Size,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
