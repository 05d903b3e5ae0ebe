package keywords

import "porticus/internal/models"

// Irish, Welsh, Scottish Gaelic, Breton.
func init() {
	register(models.Celtic, map[models.Sector][]string{
		models.Education: {
			"ollscoil", "prifysgol", "oilthigh", "scoil", "ysgol", "sgoil", "cúrsa", "cwrs",
			"cùrsa", "mac léinn", "myfyriwr", "oideachas", "addysg", "foghlam", "múinteoir",
			"skol", "skolaer",
		},
		models.Finance: {
			"banc", "iasacht", "benthyciad", "morgáiste", "morgais", "cuntas", "cyfrif",
			"infheistíocht", "buddsoddiad", "árachas", "yswiriant", "arian", "airgead",
		},
		models.Medical: {
			"ospidéal", "ysbyty", "ospadal", "clinig", "dochtúir", "meddyg", "dotair",
			"cógaslann", "fferyllfa", "sláinte", "iechyd", "slàinte", "fiaclóir", "deintydd",
		},
		models.Retail: {
			"siopa", "siop", "bùth", "ceannach", "prynu", "lascaine", "gostyngiad",
			"ollmhargadh", "archfarchnad", "margadh", "marchnad", "stal",
		},
		models.Tax: {
			"cáin", "cánacha", "treth", "trethi", "cìs", "cáin bhreisluacha", "cuntasóir",
			"cyfrifydd", "cyllid", "tell",
		},
		models.Travel: {
			"taisteal", "teithio", "siubhal", "óstán", "gwesty", "taigh-òsta", "eitilt", "hedfan",
			"aerfort", "maes awyr", "ticéad", "tocyn", "tiocaid", "saoire", "gwyliau",
			"turasóireacht", "twristiaeth",
		},
		models.Vehicle: {
			"gluaisteán", "cerbyd", "feithicil", "carbad", "gluaisrothar", "beic modur", "leoraí",
			"lori", "boinn", "teiars", "garáiste", "garej", "karr",
		},
	})
}
