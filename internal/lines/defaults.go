package lines

import "github.com/cleared-dev/regnskap/internal/model"

const (
	rs = model.StatementResult
	bs = model.StatementBalance
)

// detail returns a level 1 detail line. parents are delsumnr, sumnr, sumnr2
// and sluttsumnr in that order; trailing ones may be omitted.
func detail(n int, name string, t model.StatementType, sign int, parents ...int) model.Line {
	l := model.Line{Number: n, Name: name, Type: t, Level: 1, IncludeInSum: true, Sign: sign}
	var p [4]int
	copy(p[:], parents)
	l.ParentSub, l.ParentSum, l.ParentSum2, l.ParentGrandSum = p[0], p[1], p[2], p[3]
	return l
}

func sum(n int, name string, t model.StatementType, level int, formula string) model.Line {
	return model.Line{
		Number: n, Name: name, Type: t, Level: level,
		IsSubtotal: true, IncludeInSum: true, Sign: 1, Formula: formula,
	}
}

// DefaultDefinitions returns a compact Norwegian statement layout. Detail
// lines point directly at every sum they belong to; results that combine
// sums are formulas. Revenue lines carry sign -1 so income shows positive.
func DefaultDefinitions() []model.Line {
	note := detail(590, "Herav leasingforpliktelser (note)", bs, 1, 0, 560)
	note.IncludeInSum = false

	return []model.Line{
		detail(10, "Salgsinntekt", rs, -1, 0, 19),
		detail(15, "Annen driftsinntekt", rs, -1, 0, 19),
		sum(19, "Sum driftsinntekter", rs, 2, ""),
		detail(20, "Varekostnad", rs, 1, 0, 79),
		detail(40, "Lønnskostnad", rs, 1, 0, 79),
		detail(50, "Avskrivning", rs, 1, 0, 79),
		detail(70, "Annen driftskostnad", rs, 1, 0, 79),
		sum(79, "Sum driftskostnader", rs, 2, ""),
		sum(80, "Driftsresultat", rs, 3, "=19-79"),
		detail(100, "Finansinntekt", rs, -1, 0, 130),
		detail(110, "Finanskostnad", rs, 1, 0, 135),
		sum(130, "Sum finansinntekter", rs, 2, ""),
		sum(135, "Sum finanskostnader", rs, 2, ""),
		sum(155, "Netto finansposter", rs, 3, "=130-135"),
		sum(160, "Resultat før skattekostnad", rs, 3, "=80+155"),
		detail(200, "Skattekostnad", rs, 1),
		sum(280, "Årsresultat", rs, 4, "=160-200"),
		detail(310, "Overføringer annen egenkapital", rs, 1, 0, 350),
		sum(350, "Sum overføringer", rs, 2, ""),

		detail(510, "Immaterielle eiendeler", bs, 1, 0, 560, 0, 665),
		detail(550, "Tomter, bygninger", bs, 1, 555, 560, 0, 665),
		detail(552, "Maskiner, inventar", bs, 1, 555, 560, 0, 665),
		sum(555, "Sum varige driftsmidler", bs, 2, ""),
		detail(557, "Finansielle anleggsmidler", bs, 1, 0, 560, 0, 665),
		sum(560, "Sum anleggsmidler", bs, 3, ""),
		note,
		detail(605, "Varelager", bs, 1, 0, 660, 0, 665),
		detail(610, "Kundefordringer", bs, 1, 640, 660, 0, 665),
		detail(620, "Andre fordringer", bs, 1, 640, 660, 0, 665),
		sum(640, "Sum fordringer", bs, 2, ""),
		detail(655, "Bankinnskudd, kontanter", bs, 1, 0, 660, 0, 665),
		sum(660, "Sum omløpsmidler", bs, 3, ""),
		sum(665, "Sum eiendeler", bs, 4, ""),
		detail(700, "Innskutt egenkapital", bs, 1, 0, 715, 0, 850),
		detail(705, "Opptjent egenkapital", bs, 1, 0, 715, 0, 850),
		sum(715, "Sum egenkapital", bs, 3, ""),
		detail(735, "Avsetning for forpliktelser", bs, 1, 770, 0, 820, 850),
		detail(760, "Annen langsiktig gjeld", bs, 1, 770, 0, 820, 850),
		sum(770, "Sum langsiktig gjeld", bs, 2, ""),
		detail(780, "Leverandørgjeld", bs, 1, 810, 0, 820, 850),
		detail(790, "Skyldige offentlige avgifter", bs, 1, 810, 0, 820, 850),
		detail(800, "Annen kortsiktig gjeld", bs, 1, 810, 0, 820, 850),
		sum(810, "Sum kortsiktig gjeld", bs, 2, ""),
		sum(820, "Sum gjeld", bs, 3, ""),
		sum(850, "Sum egenkapital og gjeld", bs, 4, ""),
	}
}
