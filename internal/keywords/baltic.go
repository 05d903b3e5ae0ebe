package keywords

import "porticus/internal/models"

// Lithuanian, Latvian.
func init() {
	register(models.Baltic, map[models.Sector][]string{
		models.Education: {
			"universitetas", "universitāte", "mokykla", "skola", "kursai", "kurss", "studentas",
			"students", "mokytojas", "skolotājs", "švietimas", "izglītība", "akademija", "akadēmija",
		},
		models.Finance: {
			"bankas", "banka", "kreditas", "kredīts", "paskola", "aizdevums", "hipoteka", "hipotēka",
			"sąskaita", "konts", "investicijos", "investīcijas", "draudimas", "apdrošināšana",
		},
		models.Medical: {
			"ligoninė", "slimnīca", "klinika", "gydytojas", "ārsts", "vaistinė", "aptieka",
			"sveikata", "veselība", "odontologas", "zobārsts",
		},
		models.Retail: {
			"parduotuvė", "veikals", "pirkimas", "pirkums", "nuolaida", "atlaide", "krepšelis",
			"grozs", "prekybos centras", "tirdzniecības centrs", "prekės", "preces",
		},
		models.Tax: {
			"mokestis", "mokesčiai", "nodoklis", "nodokļi", "pvm", "pvn", "buhalteris",
			"grāmatvedis", "deklaracija", "deklarācija",
		},
		models.Travel: {
			"kelionė", "kelionės", "ceļojums", "viešbutis", "viesnīca", "skrydis", "lidojums",
			"oro uostas", "lidosta", "bilietas", "biļete", "atostogos", "atvaļinājums",
			"turizmas", "tūrisms",
		},
		models.Vehicle: {
			"automobilis", "automašīna", "transporto priemonė", "transportlīdzeklis", "motociklas",
			"motocikls", "sunkvežimis", "kravas automašīna", "padangos", "riepas",
			"autoservisas", "autoserviss",
		},
	})
}
