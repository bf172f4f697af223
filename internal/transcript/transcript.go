// Package transcript reads batches of call summaries exported by the voice
// backend, one JSON object per line.
package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Transcript is one finished call. Summary is kept raw so that callers can
// reject non-string payloads with a typed error instead of coercing them.
type Transcript struct {
	CallID  string          `json:"call_id"`
	EndedAt time.Time       `json:"ended_at"`
	Summary json.RawMessage `json:"summary"`
}

// LoadFromJSONL loads transcripts from a JSONL file. Malformed lines are
// logged and skipped.
func LoadFromJSONL(path string, log *zap.Logger) ([]Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	defer f.Close()

	items, err := Read(f, log.With(zap.String("file", path)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// Read decodes transcripts from r.
func Read(r io.Reader, log *zap.Logger) ([]Transcript, error) {
	if log == nil {
		log = zap.NewNop()
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4<<20)

	var items []Transcript
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var item Transcript
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			log.Warn("skipping malformed transcript", zap.Int("line", lineNo), zap.Error(err))
			continue
		}
		if item.CallID == "" {
			item.CallID = fmt.Sprintf("line-%d", lineNo)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no valid transcripts found")
	}
	return items, nil
}
