package keywords

import "porticus/internal/models"

// French, Spanish, Italian, Portuguese, Romanian, Catalan.
func init() {
	register(models.Romance, map[models.Sector][]string{
		models.Education: {
			"université", "universidad", "università", "universidade", "universitate", "école",
			"escuela", "scuola", "escola", "școală", "collège", "colegio", "cours", "curso",
			"corso", "étudiant", "estudiante", "studente", "estudante", "enseignement",
			"educación", "educazione", "educação", "educație", "formation", "formación",
		},
		models.Finance: {
			"banque", "banco", "banca", "bancă", "crédit", "crédito", "credito", "prêt",
			"préstamo", "prestito", "empréstimo", "hypothèque", "hipoteca", "ipoteca",
			"compte bancaire", "cuenta bancaria", "conto corrente", "investissement", "inversión",
			"investimento", "assurance", "seguro", "assicurazione",
		},
		models.Medical: {
			"hôpital", "hospital", "ospedale", "spital", "clinique", "clínica", "clinica",
			"médecin", "médico", "medico", "pharmacie", "farmacia", "farmácia", "santé", "salud",
			"salute", "saúde", "sănătate", "dentiste", "dentista",
		},
		models.Retail: {
			"magasin", "boutique", "tienda", "negozio", "loja", "magazin", "achat", "compra",
			"acquisto", "soldes", "rebajas", "saldi", "promotion", "oferta", "offerta", "panier",
			"carrito", "carrello", "supermarché", "supermercado", "supermercato",
		},
		models.Tax: {
			"impôt", "impuesto", "imposta", "imposto", "impozit", "fiscal", "fiscale", "tva", "iva",
			"taxe", "tasa", "tassa", "taxa", "comptable", "contable", "contabile", "contabilista",
		},
		models.Travel: {
			"voyage", "viaje", "viaggio", "viagem", "călătorie", "hôtel", "hotel", "vuelo",
			"volo", "billet", "billete", "biglietto", "bilhete", "vacances", "vacaciones",
			"vacanze", "férias", "vacanță", "tourisme", "turismo", "aéroport", "aeropuerto",
			"aeroporto", "aeroport",
		},
		models.Vehicle: {
			"voiture", "coche", "automóvil", "automobile", "automóvel", "automobil", "véhicule",
			"vehículo", "veicolo", "veículo", "vehicul", "moto", "camion", "camión", "pneu",
			"neumático", "pneumatico", "concessionnaire", "concesionario",
		},
	})
}
