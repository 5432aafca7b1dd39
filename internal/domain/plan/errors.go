package plan

import (
	"errors"
	"fmt"
)

// Domain errors for plan validation

var (
	ErrWrongDayCount   = fmt.Errorf("weekly plan must have exactly %d day entries", DaysPerWeek)
	ErrEmptyDay        = errors.New("day entry has no meals")
	ErrUnknownMealType = errors.New("day entry references an unknown meal type")
)
