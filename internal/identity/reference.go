// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package identity

import "github.com/pdiddy/unifin/pkg/types"

// The reference table is the authoritative list of institutions the
// system collects for. It is based on the Office for Students annex of
// exempt charities, supplemented with universities in Scotland, Wales
// and Northern Ireland. Domains are seeded where stable and well known;
// the rest are filled in as the fetcher confirms them.

func referenceTable() []types.University {
	var out []types.University
	add := func(country string, entries ...types.University) {
		for _, e := range entries {
			e.Country = country
			out = append(out, e)
		}
	}

	add("England",
		types.University{Name: "Anglia Ruskin University", Domain: "aru.ac.uk"},
		types.University{Name: "Arts University Bournemouth"},
		types.University{Name: "University of the Arts London", Domain: "arts.ac.uk"},
		types.University{Name: "Aston University", Domain: "aston.ac.uk"},
		types.University{Name: "University of Bath", Domain: "bath.ac.uk"},
		types.University{Name: "Bath Spa University"},
		types.University{Name: "University of Bedfordshire"},
		types.University{Name: "Birkbeck College", Domain: "bbk.ac.uk"},
		types.University{Name: "University College Birmingham"},
		types.University{Name: "University of Birmingham", Domain: "birmingham.ac.uk"},
		types.University{Name: "Birmingham City University", Domain: "bcu.ac.uk"},
		types.University{Name: "University of Bolton"},
		types.University{Name: "Bournemouth University", Domain: "bournemouth.ac.uk"},
		types.University{Name: "University of Bradford", Domain: "bradford.ac.uk"},
		types.University{Name: "University of Brighton", Domain: "brighton.ac.uk"},
		types.University{Name: "University of Bristol", Domain: "bristol.ac.uk"},
		types.University{Name: "The University College of Osteopathy"},
		types.University{Name: "Brunel University London", Domain: "brunel.ac.uk"},
		types.University{Name: "Buckinghamshire New University"},
		types.University{Name: "University of Cambridge", Domain: "cam.ac.uk"},
		types.University{Name: "The Institute of Cancer Research: Royal Cancer Hospital", Domain: "icr.ac.uk"},
		types.University{Name: "University of Central Lancashire", Domain: "uclan.ac.uk"},
		types.University{Name: "University of Chichester"},
		types.University{Name: "City, University of London", Domain: "city.ac.uk"},
		types.University{Name: "Courtauld Institute of Art"},
		types.University{Name: "Coventry University", Domain: "coventry.ac.uk"},
		types.University{Name: "Cranfield University", Domain: "cranfield.ac.uk"},
		types.University{Name: "University for the Creative Arts"},
		types.University{Name: "University of Cumbria"},
		types.University{Name: "De Montfort University", Domain: "dmu.ac.uk"},
		types.University{Name: "University of Derby", Domain: "derby.ac.uk"},
		types.University{Name: "University of Durham", Domain: "durham.ac.uk"},
		types.University{Name: "University of East Anglia", Domain: "uea.ac.uk"},
		types.University{Name: "University of East London", Domain: "uel.ac.uk"},
		types.University{Name: "Edge Hill University"},
		types.University{Name: "University of Essex", Domain: "essex.ac.uk"},
		types.University{Name: "University of Exeter", Domain: "exeter.ac.uk"},
		types.University{Name: "Falmouth University"},
		types.University{Name: "University of Gloucestershire"},
		types.University{Name: "Goldsmiths College", Domain: "gold.ac.uk"},
		types.University{Name: "University of Greenwich", Domain: "gre.ac.uk"},
		types.University{Name: "University of Hertfordshire", Domain: "herts.ac.uk"},
		types.University{Name: "University of Huddersfield", Domain: "hud.ac.uk"},
		types.University{Name: "University of Hull", Domain: "hull.ac.uk"},
		types.University{Name: "Imperial College of Science, Technology and Medicine", Domain: "imperial.ac.uk"},
		types.University{Name: "University of Keele", Domain: "keele.ac.uk"},
		types.University{Name: "University of Kent", Domain: "kent.ac.uk"},
		types.University{Name: "King's College London", Domain: "kcl.ac.uk"},
		types.University{Name: "Kingston University", Domain: "kingston.ac.uk"},
		types.University{Name: "University of Lancaster", Domain: "lancaster.ac.uk"},
		types.University{Name: "University of Leeds", Domain: "leeds.ac.uk"},
		types.University{Name: "Leeds Arts University"},
		types.University{Name: "Leeds Beckett University", Domain: "leedsbeckett.ac.uk"},
		types.University{Name: "The University of Leicester", Domain: "le.ac.uk"},
		types.University{Name: "University of Lincoln", Domain: "lincoln.ac.uk"},
		types.University{Name: "University of Liverpool", Domain: "liverpool.ac.uk"},
		types.University{Name: "Liverpool John Moores University", Domain: "ljmu.ac.uk"},
		types.University{Name: "University College London", Domain: "ucl.ac.uk"},
		types.University{Name: "University of London", Domain: "london.ac.uk"},
		types.University{Name: "London Business School", Domain: "london.edu"},
		types.University{Name: "London School of Economics and Political Science", Domain: "lse.ac.uk"},
		types.University{Name: "London School of Hygiene and Tropical Medicine", Domain: "lshtm.ac.uk"},
		types.University{Name: "London Metropolitan University"},
		types.University{Name: "London South Bank University", Domain: "lsbu.ac.uk"},
		types.University{Name: "Loughborough University", Domain: "lboro.ac.uk"},
		types.University{Name: "University of Manchester", Domain: "manchester.ac.uk"},
		types.University{Name: "Manchester Metropolitan University", Domain: "mmu.ac.uk"},
		types.University{Name: "Middlesex University", Domain: "mdx.ac.uk"},
		types.University{Name: "University of Newcastle upon Tyne", Domain: "ncl.ac.uk"},
		types.University{Name: "University of Northampton"},
		types.University{Name: "University of Northumbria at Newcastle", Domain: "northumbria.ac.uk"},
		types.University{Name: "Norwich University of the Arts"},
		types.University{Name: "The University of Nottingham", Domain: "nottingham.ac.uk"},
		types.University{Name: "Nottingham Trent University", Domain: "ntu.ac.uk"},
		types.University{Name: "The Open University", Domain: "open.ac.uk"},
		types.University{Name: "School of Oriental and African Studies", Domain: "soas.ac.uk"},
		types.University{Name: "University of Oxford", Domain: "ox.ac.uk"},
		types.University{Name: "Oxford Brookes University", Domain: "brookes.ac.uk"},
		types.University{Name: "University of Plymouth", Domain: "plymouth.ac.uk"},
		types.University{Name: "Plymouth College of Art"},
		types.University{Name: "University of Portsmouth", Domain: "port.ac.uk"},
		types.University{Name: "Queen Mary University of London", Domain: "qmul.ac.uk"},
		types.University{Name: "Ravensbourne University London"},
		types.University{Name: "University of Reading", Domain: "reading.ac.uk"},
		types.University{Name: "Roehampton University", Domain: "roehampton.ac.uk"},
		types.University{Name: "The Royal Central School of Speech and Drama"},
		types.University{Name: "Royal College of Art", Domain: "rca.ac.uk"},
		types.University{Name: "Royal Holloway, University of London", Domain: "royalholloway.ac.uk"},
		types.University{Name: "Royal Northern College of Music"},
		types.University{Name: "The Royal Veterinary College", Domain: "rvc.ac.uk"},
		types.University{Name: "St George's, University of London", Domain: "sgul.ac.uk"},
		types.University{Name: "University of St Mark & St John"},
		types.University{Name: "The University of Salford", Domain: "salford.ac.uk"},
		types.University{Name: "The University of Sheffield", Domain: "sheffield.ac.uk"},
		types.University{Name: "Sheffield Hallam University", Domain: "shu.ac.uk"},
		types.University{Name: "University of Southampton", Domain: "southampton.ac.uk"},
		types.University{Name: "Solent University"},
		types.University{Name: "Staffordshire University", Domain: "staffs.ac.uk"},
		types.University{Name: "University of Suffolk"},
		types.University{Name: "University of Sunderland", Domain: "sunderland.ac.uk"},
		types.University{Name: "University of Surrey", Domain: "surrey.ac.uk"},
		types.University{Name: "The University of Sussex", Domain: "sussex.ac.uk"},
		types.University{Name: "Teesside University", Domain: "tees.ac.uk"},
		types.University{Name: "University of Warwick", Domain: "warwick.ac.uk"},
		types.University{Name: "University of the West of England, Bristol", Domain: "uwe.ac.uk"},
		types.University{Name: "The University of West London", Domain: "uwl.ac.uk"},
		types.University{Name: "The University of Westminster", Domain: "westminster.ac.uk"},
		types.University{Name: "University of Winchester"},
		types.University{Name: "The University of Wolverhampton", Domain: "wlv.ac.uk"},
		types.University{Name: "University of Worcester", Domain: "worcester.ac.uk"},
		types.University{Name: "Writtle University College"},
		types.University{Name: "University of York", Domain: "york.ac.uk"},
		types.University{Name: "York St John University"},
	)

	add("Scotland",
		types.University{Name: "Abertay University", Domain: "abertay.ac.uk"},
		types.University{Name: "University of Aberdeen", Domain: "abdn.ac.uk"},
		types.University{Name: "University of Dundee", Domain: "dundee.ac.uk"},
		types.University{Name: "University of Edinburgh", Domain: "ed.ac.uk"},
		types.University{Name: "Edinburgh Napier University", Domain: "napier.ac.uk"},
		types.University{Name: "University of Glasgow", Domain: "gla.ac.uk"},
		types.University{Name: "Glasgow Caledonian University", Domain: "gcu.ac.uk"},
		types.University{Name: "Glasgow School of Art"},
		types.University{Name: "Heriot-Watt University", Domain: "hw.ac.uk"},
		types.University{Name: "University of the Highlands and Islands", Domain: "uhi.ac.uk"},
		types.University{Name: "Open University in Scotland"},
		types.University{Name: "Queen Margaret University, Edinburgh", Domain: "qmu.ac.uk"},
		types.University{Name: "Robert Gordon University", Domain: "rgu.ac.uk"},
		types.University{Name: "Royal Conservatoire of Scotland"},
		types.University{Name: "Scotland's Rural College", Domain: "sruc.ac.uk"},
		types.University{Name: "University of St Andrews", Domain: "st-andrews.ac.uk"},
		types.University{Name: "University of Stirling", Domain: "stir.ac.uk"},
		types.University{Name: "University of Strathclyde", Domain: "strath.ac.uk"},
		types.University{Name: "University of the West of Scotland", Domain: "uws.ac.uk"},
	)

	add("Wales",
		types.University{Name: "Aberystwyth University", Domain: "aber.ac.uk"},
		types.University{Name: "Bangor University", Domain: "bangor.ac.uk"},
		types.University{Name: "Cardiff Metropolitan University", Domain: "cardiffmet.ac.uk"},
		types.University{Name: "Cardiff University", Domain: "cardiff.ac.uk"},
		types.University{Name: "Swansea University", Domain: "swansea.ac.uk"},
		types.University{Name: "University of South Wales", Domain: "southwales.ac.uk"},
		types.University{Name: "University of Wales Trinity Saint David", Domain: "uwtsd.ac.uk"},
		types.University{Name: "Wrexham University"},
	)

	add("Northern Ireland",
		types.University{Name: "Queen's University Belfast", Domain: "qub.ac.uk"},
		types.University{Name: "Ulster University", Domain: "ulster.ac.uk"},
		types.University{Name: "St Mary's University College"},
		types.University{Name: "Stranmillis University College"},
	)

	return out
}

// aliasTable maps folded raw-name variants to canonical names. Entries
// cover abbreviations and historical names that folding alone cannot
// resolve. Keys must already be in folded form (see fold).
var aliasTable = map[string]string{
	"ucl":                              "University College London",
	"lse":                              "London School of Economics and Political Science",
	"soas":                             "School of Oriental and African Studies",
	"soas university of london":        "School of Oriental and African Studies",
	"kcl":                              "King's College London",
	"qmul":                             "Queen Mary University of London",
	"queen mary":                       "Queen Mary University of London",
	"uea":                              "University of East Anglia",
	"uwe":                              "University of the West of England, Bristol",
	"uwe bristol":                      "University of the West of England, Bristol",
	"aru":                              "Anglia Ruskin University",
	"imperial college london":          "Imperial College of Science, Technology and Medicine",
	"imperial college":                 "Imperial College of Science, Technology and Medicine",
	"durham university":                "University of Durham",
	"newcastle university":             "University of Newcastle upon Tyne",
	"northumbria university":           "University of Northumbria at Newcastle",
	"lancaster university":             "University of Lancaster",
	"keele university":                 "University of Keele",
	"leicester university":             "The University of Leicester",
	"city university london":           "City, University of London",
	"city university of london":        "City, University of London",
	"st georges university of london":  "St George's, University of London",
	"royal holloway":                   "Royal Holloway, University of London",
	"goldsmiths university of london":  "Goldsmiths College",
	"birkbeck university of london":    "Birkbeck College",
	"open university":                  "The Open University",
	"solent university southampton":    "Solent University",
	"southampton solent university":    "Solent University",
	"ude":                              "University of Derby",
	"queens university belfast":        "Queen's University Belfast",
	"glyndwr university":               "Wrexham University",
	"university of central lancashire preston": "University of Central Lancashire",
	"uclan": "University of Central Lancashire",
}
