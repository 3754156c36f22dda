package printer

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const tableWidth = 81

var (
	titleLine = strings.Repeat("*", 36) + "Block list" + strings.Repeat("*", tableWidth-46)
	starLine  = strings.Repeat("*", tableWidth)
	dashLine  = strings.Repeat("-", tableWidth)
)

// writeText prints rep as the block table.
func writeText(w io.Writer, rep Report) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, titleLine)
	fmt.Fprintln(bw, "No.\tStatus\tPrev\tt_Begin\t\tt_End\t\tt_Size")
	fmt.Fprintln(bw, dashLine)
	for _, r := range rep.Rows {
		fmt.Fprintf(bw, "%d\t%s\t%s\t0x%08x\t0x%08x\t%d\n", r.No, r.Status, r.Prev, r.Begin, r.End, r.Size)
	}
	fmt.Fprintln(bw, dashLine)
	fmt.Fprintln(bw, starLine)
	fmt.Fprintf(bw, "Total used size = %d\n", rep.Used)
	fmt.Fprintf(bw, "Total free size = %d\n", rep.Free)
	fmt.Fprintf(bw, "Total size = %d\n", rep.Total())
	fmt.Fprintln(bw, starLine)

	return bw.Flush()
}
