package categorizer

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"fjacquet/bill-csv/internal/models"
)

// jsonObject spans from the first '{' to the last '}' of a response.
var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

type classifierAnswer struct {
	CategoryID   json.Number `json:"category_id"`
	CategoryName string      `json:"category_name"`
	Reason       string      `json:"reason"`
}

// ParseResponse extracts the JSON object embedded in a model response and
// validates its category id. The category name always comes from
// models.CategoryLabels, whatever the model wrote.
func ParseResponse(raw string) (models.Classification, error) {
	text := strings.TrimSpace(raw)
	match := jsonObject.FindString(text)
	if match == "" {
		return models.Classification{}, fmt.Errorf("no JSON object found in response: %s", text)
	}

	var answer classifierAnswer
	if err := json.Unmarshal([]byte(match), &answer); err != nil {
		return models.Classification{}, fmt.Errorf("failed to parse response as JSON: %s: %w", text, err)
	}

	id, err := categoryID(answer.CategoryID)
	if err != nil {
		return models.Classification{}, err
	}
	name, ok := models.CategoryLabel(id)
	if !ok {
		return models.Classification{}, fmt.Errorf("invalid category_id: %d", id)
	}

	return models.Classification{
		CategoryID:   id,
		CategoryName: name,
		Reason:       strings.TrimSpace(answer.Reason),
		RawResponse:  text,
	}, nil
}

func categoryID(n json.Number) (int, error) {
	if n == "" {
		return 0, fmt.Errorf("invalid category_id: missing")
	}
	if i, err := n.Int64(); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid category_id: %s", n)
	}
	return int(f), nil
}
