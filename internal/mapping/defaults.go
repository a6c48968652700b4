package mapping

import "github.com/cleared-dev/regnskap/internal/model"

// DefaultIntervals maps the NS 4102 standard chart of accounts onto the
// lines returned by lines.DefaultDefinitions.
func DefaultIntervals() []model.IntervalRule {
	return []model.IntervalRule{
		{Lo: 1000, Hi: 1099, Line: 510},
		{Lo: 1100, Hi: 1199, Line: 550},
		{Lo: 1200, Hi: 1299, Line: 552},
		{Lo: 1300, Hi: 1399, Line: 557},
		{Lo: 1400, Hi: 1499, Line: 605},
		{Lo: 1500, Hi: 1599, Line: 610},
		{Lo: 1600, Hi: 1899, Line: 620},
		{Lo: 1900, Hi: 1999, Line: 655},
		{Lo: 2000, Hi: 2049, Line: 700},
		{Lo: 2050, Hi: 2099, Line: 705},
		{Lo: 2100, Hi: 2199, Line: 735},
		{Lo: 2200, Hi: 2299, Line: 760},
		{Lo: 2300, Hi: 2399, Line: 800},
		{Lo: 2400, Hi: 2499, Line: 780},
		{Lo: 2500, Hi: 2799, Line: 790},
		{Lo: 2800, Hi: 2999, Line: 800},
		{Lo: 3000, Hi: 3599, Line: 10},
		{Lo: 3600, Hi: 3999, Line: 15},
		{Lo: 4000, Hi: 4999, Line: 20},
		{Lo: 5000, Hi: 5999, Line: 40},
		{Lo: 6000, Hi: 6099, Line: 50},
		{Lo: 6100, Hi: 7999, Line: 70},
		{Lo: 8000, Hi: 8099, Line: 100},
		{Lo: 8100, Hi: 8199, Line: 110},
		{Lo: 8300, Hi: 8399, Line: 200},
		{Lo: 8800, Hi: 8999, Line: 310},
	}
}
