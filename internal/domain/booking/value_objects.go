package booking

import "errors"

var ErrNegativeMoney = errors.New("money cannot be negative")

// Money is an amount in halalas.
type Money struct {
	halalas int64
}

func NewMoney(halalas int64) (Money, error) {
	if halalas < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{halalas: halalas}, nil
}

func MustMoney(halalas int64) Money {
	m, err := NewMoney(halalas)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Halalas() int64 {
	return m.halalas
}

func (m Money) SAR() float64 {
	return float64(m.halalas) / 100.0
}

func (m Money) Add(other Money) Money {
	return Money{halalas: m.halalas + other.halalas}
}

func (m Money) Sub(other Money) Money {
	remaining := m.halalas - other.halalas
	if remaining < 0 {
		remaining = 0
	}
	return Money{halalas: remaining}
}

func (m Money) IsZero() bool {
	return m.halalas == 0
}
