package ingest

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/oy-619/teamrecall/internal/domain/document"
	"github.com/oy-619/teamrecall/internal/normalize"
)

var (
	dateHeaderRe = regexp.MustCompile(`^E\d+/\d{1,2}/\d{1,2}\([月火水木金土日]\)$`)
	clockRe      = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
)

// ParseTranscript reads a chat-export transcript. A line holding only an
// era date ("E7/10/22(日)") opens a new day; message lines are
// "HH:MM<TAB>author<TAB>text"; any other bare line continues the previous
// message. The document timestamp is the day header joined with the
// message's clock time. Lines that look like messages but carry no valid
// clock time are counted as skipped, never fatal.
func ParseTranscript(r io.Reader) ([]document.Document, int, error) {
	var (
		docs    []document.Document
		skipped int

		date    string
		current string
		author  string
		stamp   string
	)

	flush := func() {
		if strings.TrimSpace(current) == "" {
			return
		}
		docs = append(docs, document.New(strings.TrimSpace(current), author, stamp))
		current = ""
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := normalize.CleanControls(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) == 1 {
			if dateHeaderRe.MatchString(parts[0]) {
				flush()
				date = parts[0]
				continue
			}
			// Continuation of a multi-line message.
			if current != "" {
				current += " " + parts[0]
			} else {
				current = parts[0]
			}
			continue
		}

		if !clockRe.MatchString(parts[0]) {
			skipped++
			continue
		}

		flush()
		author = parts[1]
		stamp = strings.TrimSpace(date + " " + parts[0])
		if len(parts) > 2 {
			current = strings.Join(parts[2:], " ")
		} else {
			current = ""
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, err
	}
	flush()

	return docs, skipped, nil
}
