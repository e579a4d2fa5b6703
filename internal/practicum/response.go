package practicum

import (
	"encoding/json"
	"fmt"
	"math"
)

// OutcomeKind tells a successful validation apart from "nothing new".
type OutcomeKind int

const (
	// OutcomeNoPendingWork means the homeworks list was empty.
	OutcomeNoPendingWork OutcomeKind = iota
	// OutcomeWorkItem means Outcome.Item holds the newest homework.
	OutcomeWorkItem
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNoPendingWork:
		return "no_pending_work"
	case OutcomeWorkItem:
		return "work_item"
	default:
		return "unknown"
	}
}

// WorkItem is the newest homework record of a status response.
type WorkItem struct {
	Name   string
	Status string
}

// Outcome is the typed result of ValidateResponse.
type Outcome struct {
	Kind OutcomeKind
	Item WorkItem

	// CurrentDate is the server clock reported with the response. It is only
	// meaningful when HasCurrentDate is set.
	CurrentDate    int64
	HasCurrentDate bool
}

// ValidateResponse checks the shape of a decoded status document and
// extracts the newest homework. The API lists homeworks newest-first, so only
// index 0 is inspected.
func ValidateResponse(raw any) (Outcome, error) {
	doc, ok := raw.(map[string]any)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: expected JSON object, got %s", ErrMalformedResponse, jsonKind(raw))
	}

	homeworks, ok := doc["homeworks"].([]any)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: homeworks must be a list, got %s", ErrMalformedResponse, jsonKind(doc["homeworks"]))
	}

	var out Outcome
	out.CurrentDate, out.HasCurrentDate = toInt64(doc["current_date"])

	if len(homeworks) == 0 {
		out.Kind = OutcomeNoPendingWork
		return out, nil
	}

	first, ok := homeworks[0].(map[string]any)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: homework record must be an object, got %s", ErrMalformedResponse, jsonKind(homeworks[0]))
	}

	out.Kind = OutcomeWorkItem
	out.Item.Name, _ = first["homework_name"].(string)
	out.Item.Status, _ = first["status"].(string)
	return out, nil
}

// toInt64 accepts the integer encodings a JSON decoder may produce.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		if n != math.Trunc(n) || n >= math.MaxInt64 || n < math.MinInt64 {
			return 0, false
		}
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "list"
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number, float64, int, int64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
