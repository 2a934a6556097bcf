package orders

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	csvFlushEvery = 200
	csvBufferSize = 32 * 1024
)

type csvStreamer struct {
	buf          *bufio.Writer
	csv          *csv.Writer
	flushEvery   int
	pendingLines int
}

func newCSVStreamer(w io.Writer) *csvStreamer {
	buf := bufio.NewWriterSize(w, csvBufferSize)
	writer := csv.NewWriter(buf)
	writer.UseCRLF = true
	return &csvStreamer{buf: buf, csv: writer, flushEvery: csvFlushEvery}
}

func (s *csvStreamer) writeRow(row []string) error {
	if s == nil || s.csv == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	if err := s.csv.Write(row); err != nil {
		return err
	}
	s.pendingLines++
	if s.flushEvery > 0 && s.pendingLines >= s.flushEvery {
		return s.Flush()
	}
	return nil
}

func (s *csvStreamer) Flush() error {
	if s == nil || s.csv == nil || s.buf == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	s.csv.Flush()
	if err := s.csv.Error(); err != nil {
		return err
	}
	if err := s.buf.Flush(); err != nil {
		return err
	}
	s.pendingLines = 0
	return nil
}

// WriteOrdersCSV streams the filtered and sorted order set as CSV.
func WriteOrdersCSV(w io.Writer, orders []Order) error {
	streamer := newCSVStreamer(w)
	printer := message.NewPrinter(language.English)
	if err := streamer.writeRow([]string{"Order ID", "Customer", "Total", "Created", "Status"}); err != nil {
		return err
	}
	for _, order := range orders {
		if err := streamer.writeRow([]string{
			strconv.FormatInt(order.ID, 10),
			order.Name,
			printer.Sprintf("%.2f", order.Total),
			order.CreatedAt.UTC().Format(time.RFC3339),
			string(order.Status),
		}); err != nil {
			return err
		}
	}
	return streamer.Flush()
}

// ExportCSV serves the unpaginated derived set.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	q := h.parseListQuery(r)
	exported := h.service.Export(q)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.csv"`)
	if err := WriteOrdersCSV(w, exported); err != nil {
		h.logger.Error("export orders csv failed", "error", err)
	}
}
