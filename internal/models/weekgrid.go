package models

import "fmt"

// Weekday and meal-slot keys are fixed: every plan, progress, skip, note and
// addon grid in the system uses exactly these seven days and three slots.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var MealSlots = []string{"breakfast", "lunch", "dinner"}

// DayMeals holds one value per meal slot.
type DayMeals[T any] struct {
	Breakfast T `bson:"breakfast" json:"breakfast"`
	Lunch     T `bson:"lunch" json:"lunch"`
	Dinner    T `bson:"dinner" json:"dinner"`
}

// WeekGrid is the 7-day x 3-slot grid shared by meal plans, progress,
// skipped meals, notes and addons. The struct fields guarantee the key set;
// zero values give the empty/false/"" defaults the API promises.
type WeekGrid[T any] struct {
	Monday    DayMeals[T] `bson:"Monday" json:"Monday"`
	Tuesday   DayMeals[T] `bson:"Tuesday" json:"Tuesday"`
	Wednesday DayMeals[T] `bson:"Wednesday" json:"Wednesday"`
	Thursday  DayMeals[T] `bson:"Thursday" json:"Thursday"`
	Friday    DayMeals[T] `bson:"Friday" json:"Friday"`
	Saturday  DayMeals[T] `bson:"Saturday" json:"Saturday"`
	Sunday    DayMeals[T] `bson:"Sunday" json:"Sunday"`
}

// Day returns a pointer to the named day's slots.
func (w *WeekGrid[T]) Day(name string) (*DayMeals[T], bool) {
	switch name {
	case "Monday":
		return &w.Monday, true
	case "Tuesday":
		return &w.Tuesday, true
	case "Wednesday":
		return &w.Wednesday, true
	case "Thursday":
		return &w.Thursday, true
	case "Friday":
		return &w.Friday, true
	case "Saturday":
		return &w.Saturday, true
	case "Sunday":
		return &w.Sunday, true
	}
	return nil, false
}

// Slot returns a pointer to the value for the named meal slot.
func (d *DayMeals[T]) Slot(meal string) (*T, bool) {
	switch meal {
	case "breakfast":
		return &d.Breakfast, true
	case "lunch":
		return &d.Lunch, true
	case "dinner":
		return &d.Dinner, true
	}
	return nil, false
}

// Get reads one cell. Unknown day or meal names report false.
func (w *WeekGrid[T]) Get(day, meal string) (T, bool) {
	var zero T
	d, ok := w.Day(day)
	if !ok {
		return zero, false
	}
	s, ok := d.Slot(meal)
	if !ok {
		return zero, false
	}
	return *s, true
}

// Set writes one cell.
func (w *WeekGrid[T]) Set(day, meal string, v T) error {
	d, ok := w.Day(day)
	if !ok {
		return fmt.Errorf("invalid day %q", day)
	}
	s, ok := d.Slot(meal)
	if !ok {
		return fmt.Errorf("invalid meal %q", meal)
	}
	*s = v
	return nil
}

// ValidCell reports whether day and meal name a real grid cell.
func ValidCell(day, meal string) bool {
	dayOK := false
	for _, d := range Weekdays {
		if d == day {
			dayOK = true
			break
		}
	}
	if !dayOK {
		return false
	}
	for _, m := range MealSlots {
		if m == meal {
			return true
		}
	}
	return false
}

// FieldPath builds the dotted Mongo update path for one grid cell, e.g.
// FieldPath("progress", "Monday", "breakfast") -> "progress.Monday.breakfast".
// It rejects unknown day/meal names so a bad request can never turn into a
// stray $set on an arbitrary field.
func FieldPath(prefix, day, meal string) (string, error) {
	if !ValidCell(day, meal) {
		return "", fmt.Errorf("invalid day/meal pair %q/%q", day, meal)
	}
	return prefix + "." + day + "." + meal, nil
}
