package datefmt

import "time"

// Clock fuente de la hora actual; permite fijar "ahora" en los tests.
type Clock interface {
	Now() time.Time
}

// RealClock usa la hora del sistema en la zona indicada (time.Local si es nil).
type RealClock struct {
	Location *time.Location
}

func (c RealClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock devuelve siempre el mismo instante.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }
