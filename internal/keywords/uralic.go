package keywords

import "porticus/internal/models"

// Finnish, Estonian, Hungarian.
func init() {
	register(models.Uralic, map[models.Sector][]string{
		models.Education: {
			"yliopisto", "ülikool", "egyetem", "koulu", "kool", "iskola", "kurssi", "kursus",
			"tanfolyam", "opiskelija", "õpilane", "hallgató", "diák", "opettaja", "õpetaja",
			"tanár", "koulutus", "haridus", "oktatás",
		},
		models.Finance: {
			"pankki", "pank", "laina", "laen", "hitel", "kölcsön", "asuntolaina", "kodulaen",
			"jelzálog", "tili", "konto", "számla", "sijoitus", "investeering", "befektetés",
			"vakuutus", "kindlustus", "biztosítás",
		},
		models.Medical: {
			"sairaala", "haigla", "kórház", "klinikka", "kliinik", "klinika", "lääkäri", "arst",
			"orvos", "apteekki", "apteek", "gyógyszertár", "terveys", "tervis", "egészség",
			"hammaslääkäri", "fogorvos",
		},
		models.Retail: {
			"kauppa", "kauplus", "pood", "ostos", "ostlemine", "vásárlás", "alennus",
			"allahindlus", "kedvezmény", "ostoskori", "ostukorv", "kosár", "supermarket",
			"áruház",
		},
		models.Tax: {
			"vero", "maks", "adó", "arvonlisävero", "käibemaks", "áfa", "kirjanpitäjä",
			"raamatupidaja", "könyvelő", "verottaja", "veroilmoitus", "tuludeklaratsioon",
			"adóbevallás",
		},
		models.Travel: {
			"matka", "reis", "utazás", "hotelli", "hotell", "szálloda", "lento", "lend",
			"repülés", "lentokenttä", "lennujaam", "repülőtér", "lippu", "pilet", "jegy", "loma",
			"puhkus", "szabadság", "matkailu", "turism", "turizmus",
		},
		models.Vehicle: {
			"auto", "autó", "ajoneuvo", "sõiduk", "jármű", "moottoripyörä", "mootorratas",
			"motorkerékpár", "kuorma-auto", "veoauto", "teherautó", "renkaat", "rehvid",
			"gumiabroncs", "autószalon",
		},
	})
}
