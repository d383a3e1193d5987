package service

import (
	"regexp"
	"strings"

	"notes-reviewer/internal/constant"
)

var lineBreakRe = regexp.MustCompile(`\r?\n`)

// ParseEmailContent extracts subject and body from a "SUBJECT: ... / BODY: ..." reply.
//
// It tries, in order: a SUBJECT line followed by a later BODY line; a split on the first
// BODY marker taking the last line before it as subject; and finally the given defaults
// for whichever part is still empty. Neither result is ever empty as long as the defaults aren't.
func ParseEmailContent(raw, defaultSubject, defaultBody string) (subject string, body string) {
	text := strings.TrimSpace(raw)
	lines := lineBreakRe.Split(text, -1)

	for i, line := range lines {
		if !strings.HasPrefix(line, constant.EmailSubjectMarker) {
			continue
		}
		subject = strings.TrimSpace(strings.TrimPrefix(line, constant.EmailSubjectMarker))
		for j := i + 1; j < len(lines); j++ {
			if strings.HasPrefix(lines[j], constant.EmailBodyMarker) {
				body = strings.TrimSpace(strings.Join(lines[j+1:], "\n"))
				break
			}
		}
		break
	}

	if subject == "" || body == "" {
		if head, tail, found := strings.Cut(text, constant.EmailBodyMarker); found {
			body = strings.TrimSpace(tail)
			head = strings.TrimSpace(strings.ReplaceAll(head, constant.EmailSubjectMarker, ""))
			subject = ""
			if head != "" {
				headLines := lineBreakRe.Split(head, -1)
				subject = strings.TrimSpace(headLines[len(headLines)-1])
			}
		}
	}

	if subject == "" {
		subject = defaultSubject
	}
	if body == "" {
		body = defaultBody
	}
	return subject, body
}
