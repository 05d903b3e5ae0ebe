package keywords

import "porticus/internal/models"

// Latin-script Slavic: Polish, Czech, Slovak, Croatian, Slovene, Serbian/Bosnian (Latin).
func init() {
	register(models.Slavic, map[models.Sector][]string{
		models.Education: {
			"uniwersytet", "univerzita", "sveučilište", "univerza", "szkoła", "škola", "šola",
			"kurs", "kurz", "student", "nauczyciel", "učitel", "edukacja", "vzdělávání",
			"vzdelávanie", "obrazovanje", "izobraževanje",
		},
		models.Finance: {
			"bank", "banka", "kredyt", "kredit", "úvěr", "úver", "pożyczka", "půjčka", "pôžička",
			"zajam", "posojilo", "hipoteka", "hypotéka", "konto", "účet", "inwestycje",
			"investice", "ubezpieczenie", "pojištění", "osiguranje", "zavarovanje",
		},
		models.Medical: {
			"szpital", "nemocnice", "nemocnica", "bolnica", "bolnišnica", "klinika", "lekarz",
			"lékař", "lekár", "liječnik", "zdravnik", "apteka", "lékárna", "lekáreň", "ljekarna",
			"lekarna", "zdrowie", "zdraví", "zdravie", "zdravlje", "zdravje", "stomatolog", "zubař",
		},
		models.Retail: {
			"sklep", "obchod", "trgovina", "prodavnica", "zakupy", "nákup", "kupovina", "promocja",
			"sleva", "zľava", "popust", "koszyk", "košík", "košarica", "supermarket",
		},
		models.Tax: {
			"podatek", "daň", "porez", "davek", "vat", "dph", "pdv", "ddv", "księgowy", "účetní",
			"účtovník", "računovođa", "računovodja", "skarbowy", "finanční úřad",
		},
		models.Travel: {
			"podróż", "cestování", "cestovanie", "putovanje", "potovanje", "hotel", "lotnisko",
			"letiště", "letisko", "zračna luka", "letališče", "bilet", "jízdenka", "letenka",
			"wakacje", "dovolená", "dovolenka", "odmor", "počitnice", "turystyka", "turistika",
			"turizem", "turizam", "wycieczka", "zájezd",
		},
		models.Vehicle: {
			"samochód", "auto", "automobil", "vozidlo", "vozilo", "pojazd", "motocykl",
			"motocikl", "ciężarówka", "nákladní", "kamion", "tovornjak", "opony", "pneumatiky",
			"gume", "pnevmatike", "autosalon", "autoservis",
		},
	})
}
