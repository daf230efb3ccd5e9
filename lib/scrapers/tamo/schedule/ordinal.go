package schedule

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/titanous/json5"
)

//go:embed number_map.json5
var defaultNumberMap []byte

const defaultNumberMapSource = "embedded:number_map.json5"

// below this similarity a suggestion is more confusing than helpful
const suggestionThreshold = 0.8

// OrdinalResolver maps the localized ordinal words of the timetable
// ("pirma", "antra", ...) to lesson numbers. It is read-only once loaded.
type OrdinalResolver struct {
	words map[string]int
}

func ParseOrdinals(source string, data []byte) (OrdinalResolver, error) {
	var words map[string]int
	err := json5.Unmarshal(data, &words)
	if err != nil {
		return OrdinalResolver{}, &ResourceLoadError{Source: source, Err: err}
	}
	if len(words) == 0 {
		return OrdinalResolver{}, &ResourceLoadError{
			Source: source,
			Err:    errors.New("mapping is empty"),
		}
	}
	for word := range words {
		if strings.TrimSpace(word) == "" {
			return OrdinalResolver{}, &ResourceLoadError{
				Source: source,
				Err:    errors.New("mapping contains an empty word"),
			}
		}
	}
	return OrdinalResolver{words: words}, nil
}

func LoadOrdinals(path string) (OrdinalResolver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return OrdinalResolver{}, &ResourceLoadError{Source: path, Err: err}
	}
	return ParseOrdinals(path, data)
}

// DefaultOrdinals loads the lithuanian mapping compiled into the binary.
func DefaultOrdinals() (OrdinalResolver, error) {
	return ParseOrdinals(defaultNumberMapSource, defaultNumberMap)
}

func (r OrdinalResolver) Resolve(word string) (int, error) {
	n, ok := r.words[word]
	if !ok {
		return 0, &UnknownOrdinalError{Word: word, Suggestion: r.suggest(word)}
	}
	return n, nil
}

func (r OrdinalResolver) Len() int {
	return len(r.words)
}

func (r OrdinalResolver) suggest(word string) string {
	var best string
	var bestSimilarity float64
	for known := range r.words {
		similarity := matchr.JaroWinkler(strings.ToLower(word), strings.ToLower(known), false)
		// ties are broken alphabetically so the message is stable
		if similarity > bestSimilarity || (similarity == bestSimilarity && known < best) {
			bestSimilarity = similarity
			best = known
		}
	}
	if bestSimilarity < suggestionThreshold {
		return ""
	}
	return best
}

func (r OrdinalResolver) String() string {
	return fmt.Sprintf("OrdinalResolver(%d words)", len(r.words))
}
