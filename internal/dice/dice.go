package dice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/justinian/dice"
)

var ErrNoNotation = errors.New("no dice notation given")

type Result struct {
	Notation string
	Total    int
	Detail   string
	Reason   string
}

func (r Result) String() string {
	s := fmt.Sprintf("`%s` rolled **%d** %s", r.Notation, r.Total, r.Detail)
	if r.Reason != "" {
		s += " " + r.Reason
	}
	return s
}

// Roll evaluates a dice notation such as "2d6+3" or "4d6k3 for strength"
func Roll(notation string) (Result, error) {
	notation = strings.TrimSpace(notation)
	if notation == "" {
		return Result{}, ErrNoNotation
	}
	res, reason, err := dice.Roll(notation)
	if err != nil {
		return Result{}, fmt.Errorf("could not roll %q: %w", notation, err)
	}
	return Result{
		Notation: strings.TrimSpace(strings.TrimSuffix(notation, reason)),
		Total:    res.Int(),
		Detail:   res.String(),
		Reason:   strings.TrimSpace(reason),
	}, nil
}
