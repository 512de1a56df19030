package dialogue

import (
	"fmt"
	"strings"
)

// ProtocolParseError reports a narrowing-protocol reply missing one of its
// required tagged sections. It is surfaced rather than defaulted: losing the
// candidate list or the continue flag would silently break the turn-by-turn
// narrowing contract.
type ProtocolParseError struct {
	Tag string
}

func (e *ProtocolParseError) Error() string {
	return fmt.Sprintf("model reply missing <%s> section", e.Tag)
}

// TurnSections is the parsed form of one narrowing-protocol reply.
type TurnSections struct {
	Think    string
	Diseases string
	Response string
	Continue string
}

// ParseTurn extracts the four required tagged sections from a raw model
// reply. Every section must be present; inner text is trimmed.
func ParseTurn(raw string) (*TurnSections, error) {
	think, err := section(raw, "THINK")
	if err != nil {
		return nil, err
	}
	diseases, err := section(raw, "DISEASES")
	if err != nil {
		return nil, err
	}
	response, err := section(raw, "RESPONSE")
	if err != nil {
		return nil, err
	}
	cont, err := section(raw, "CONTINUE")
	if err != nil {
		return nil, err
	}
	return &TurnSections{
		Think:    think,
		Diseases: diseases,
		Response: response,
		Continue: cont,
	}, nil
}

// DiseaseList splits the <DISEASES> block on commas, trimming whitespace and
// dropping empties.
func (t *TurnSections) DiseaseList() []string {
	parts := strings.Split(t.Diseases, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if d := strings.TrimSpace(p); d != "" {
			list = append(list, d)
		}
	}
	return list
}

// ContinueFlag reports whether the <CONTINUE> section is the literal "true",
// case-insensitively.
func (t *TurnSections) ContinueFlag() bool {
	return strings.EqualFold(strings.TrimSpace(t.Continue), "true")
}

func section(raw, tag string) (string, error) {
	open := "<" + tag + ">"
	closing := "</" + tag + ">"
	start := strings.Index(raw, open)
	if start < 0 {
		return "", &ProtocolParseError{Tag: tag}
	}
	rest := raw[start+len(open):]
	end := strings.Index(rest, closing)
	if end < 0 {
		return "", &ProtocolParseError{Tag: tag}
	}
	return strings.TrimSpace(rest[:end]), nil
}
