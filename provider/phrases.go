package provider

// defaultPhrases is the static English phrase table per target language.
// Multi-word medical phrases sit next to the single words they contain; the
// dictionary always prefers the longest phrase that matches.
var defaultPhrases = map[string]map[string]string{
	"es": {
		"take tylenol by mouth three times daily for pain": "tome tylenol por vía oral tres veces al día para el dolor",
		"take medication twice daily":                      "tome el medicamento dos veces al día",
		"take medication as prescribed":                    "tome el medicamento según lo indicado",
		"by mouth every 8 hours as needed":                 "por vía oral cada 8 horas según sea necesario",
		"by mouth every 6 hours as needed":                 "por vía oral cada 6 horas según sea necesario",
		"by mouth":                                         "por vía oral",
		"follow up with your primary care physician":       "haga seguimiento con su médico de atención primaria",
		"follow up with your doctor":                       "haga seguimiento con su médico",
		"follow up with doctor":                            "haga seguimiento con su médico",
		"follow up":                                        "seguimiento",
		"return to the emergency room":                     "regrese a la sala de emergencias",
		"return to the emergency department":               "regrese al departamento de emergencias",
		"call your doctor":                                 "llame a su médico",
		"call 911":                                         "llame al 911",
		"chest pain":                                       "dolor de pecho",
		"shortness of breath":                              "falta de aire",
		"difficulty breathing":                             "dificultad para respirar",
		"congestive heart failure":                         "insuficiencia cardíaca congestiva",
		"heart failure":                                    "insuficiencia cardíaca",
		"blood pressure":                                   "presión arterial",
		"blood sugar":                                      "azúcar en la sangre",
		"rest at home":                                     "descanse en casa",
		"drink plenty of fluids":                           "beba muchos líquidos",
		"low sodium diet":                                  "dieta baja en sodio",
		"no heavy lifting":                                 "no levante objetos pesados",
		"keep the wound clean and dry":                     "mantenga la herida limpia y seca",
		"weigh yourself daily":                             "pésese todos los días",
		"as needed for pain":                               "según sea necesario para el dolor",
		"as needed":                                        "según sea necesario",
		"once daily":                                       "una vez al día",
		"twice daily":                                      "dos veces al día",
		"three times daily":                                "tres veces al día",
		"four times daily":                                 "cuatro veces al día",
		"at bedtime":                                       "al acostarse",
		"with food":                                        "con comida",
		"every day":                                        "todos los días",
		"daily":                                            "diariamente",
		"every":                                            "cada",
		"hours":                                            "horas",
		"hour":                                             "hora",
		"days":                                             "días",
		"day":                                              "día",
		"weeks":                                            "semanas",
		"week":                                             "semana",
		"months":                                           "meses",
		"take":                                             "tome",
		"medication":                                       "medicamento",
		"medications":                                      "medicamentos",
		"tablet":                                           "tableta",
		"tablets":                                          "tabletas",
		"capsule":                                          "cápsula",
		"pain":                                             "dolor",
		"fever":                                            "fiebre",
		"nausea":                                           "náuseas",
		"vomiting":                                         "vómitos",
		"bleeding":                                         "sangrado",
		"swelling":                                         "hinchazón",
		"dizziness":                                        "mareos",
		"headache":                                         "dolor de cabeza",
		"hypertension":                                     "hipertensión",
		"diabetes":                                         "diabetes",
		"pneumonia":                                        "neumonía",
		"infection":                                        "infección",
		"surgery":                                          "cirugía",
		"appointment":                                      "cita",
		"doctor":                                           "médico",
		"physician":                                        "médico",
		"clinic":                                           "clínica",
		"wound":                                            "herida",
		"diet":                                             "dieta",
		"worsening":                                        "empeoramiento",
		"in":                                               "en",
		"with":                                             "con",
		"and":                                              "y",
		"for":                                              "para",
		"or":                                               "o",
		"if":                                               "si",
		"your":                                             "su",
	},
	"fr": {
		"take medication twice daily":         "prenez le médicament deux fois par jour",
		"by mouth every 8 hours as needed":    "par voie orale toutes les 8 heures si nécessaire",
		"by mouth":                            "par voie orale",
		"follow up with your doctor":          "consultez votre médecin pour un suivi",
		"follow up with doctor":               "consultez votre médecin pour un suivi",
		"follow up":                           "suivi",
		"return to the emergency room":        "retournez aux urgences",
		"call your doctor":                    "appelez votre médecin",
		"chest pain":                          "douleur thoracique",
		"shortness of breath":                 "essoufflement",
		"difficulty breathing":                "difficulté à respirer",
		"heart failure":                       "insuffisance cardiaque",
		"blood pressure":                      "tension artérielle",
		"rest at home":                        "reposez-vous à la maison",
		"drink plenty of fluids":              "buvez beaucoup de liquides",
		"low sodium diet":                     "régime pauvre en sel",
		"keep the wound clean and dry":        "gardez la plaie propre et sèche",
		"as needed":                           "si nécessaire",
		"once daily":                          "une fois par jour",
		"twice daily":                         "deux fois par jour",
		"three times daily":                   "trois fois par jour",
		"at bedtime":                          "au coucher",
		"with food":                           "avec de la nourriture",
		"daily":                               "chaque jour",
		"every":                               "toutes les",
		"hours":                               "heures",
		"days":                                "jours",
		"weeks":                               "semaines",
		"take":                                "prenez",
		"medication":                          "médicament",
		"tablet":                              "comprimé",
		"pain":                                "douleur",
		"fever":                               "fièvre",
		"nausea":                              "nausées",
		"vomiting":                            "vomissements",
		"bleeding":                            "saignement",
		"swelling":                            "gonflement",
		"dizziness":                           "vertiges",
		"hypertension":                        "hypertension",
		"pneumonia":                           "pneumonie",
		"infection":                           "infection",
		"appointment":                         "rendez-vous",
		"doctor":                              "médecin",
		"in":                                  "dans",
		"with":                                "avec",
		"and":                                 "et",
		"for":                                 "pour",
	},
	"de": {
		"take medication twice daily":      "nehmen Sie das Medikament zweimal täglich",
		"by mouth every 8 hours as needed": "oral alle 8 Stunden bei Bedarf",
		"by mouth":                         "oral",
		"follow up with your doctor":       "Nachsorge bei Ihrem Arzt",
		"follow up with doctor":            "Nachsorge beim Arzt",
		"follow up":                        "Nachsorge",
		"return to the emergency room":     "kommen Sie in die Notaufnahme zurück",
		"call your doctor":                 "rufen Sie Ihren Arzt an",
		"chest pain":                       "Brustschmerzen",
		"shortness of breath":              "Atemnot",
		"difficulty breathing":             "Atembeschwerden",
		"heart failure":                    "Herzinsuffizienz",
		"blood pressure":                   "Blutdruck",
		"rest at home":                     "ruhen Sie sich zu Hause aus",
		"drink plenty of fluids":           "trinken Sie viel Flüssigkeit",
		"low sodium diet":                  "natriumarme Diät",
		"keep the wound clean and dry":     "halten Sie die Wunde sauber und trocken",
		"as needed":                        "bei Bedarf",
		"once daily":                       "einmal täglich",
		"twice daily":                      "zweimal täglich",
		"three times daily":                "dreimal täglich",
		"at bedtime":                       "vor dem Schlafengehen",
		"with food":                        "mit dem Essen",
		"daily":                            "täglich",
		"every":                            "alle",
		"hours":                            "Stunden",
		"days":                             "Tage",
		"weeks":                            "Wochen",
		"take":                             "nehmen Sie",
		"medication":                       "Medikament",
		"tablet":                           "Tablette",
		"pain":                             "Schmerzen",
		"fever":                            "Fieber",
		"nausea":                           "Übelkeit",
		"vomiting":                         "Erbrechen",
		"bleeding":                         "Blutung",
		"swelling":                         "Schwellung",
		"dizziness":                        "Schwindel",
		"hypertension":                     "Bluthochdruck",
		"pneumonia":                        "Lungenentzündung",
		"infection":                        "Infektion",
		"appointment":                      "Termin",
		"doctor":                           "Arzt",
		"in":                               "in",
		"with":                             "mit",
		"and":                              "und",
		"for":                              "für",
	},
	"it": {
		"take medication twice daily":      "prenda il farmaco due volte al giorno",
		"by mouth every 8 hours as needed": "per bocca ogni 8 ore al bisogno",
		"by mouth":                         "per bocca",
		"follow up with your doctor":       "controllo con il suo medico",
		"follow up with doctor":            "controllo con il medico",
		"follow up":                        "controllo",
		"return to the emergency room":     "torni al pronto soccorso",
		"call your doctor":                 "chiami il suo medico",
		"chest pain":                       "dolore al petto",
		"shortness of breath":              "mancanza di respiro",
		"heart failure":                    "insufficienza cardiaca",
		"blood pressure":                   "pressione sanguigna",
		"rest at home":                     "riposi a casa",
		"drink plenty of fluids":           "beva molti liquidi",
		"as needed":                        "al bisogno",
		"once daily":                       "una volta al giorno",
		"twice daily":                      "due volte al giorno",
		"three times daily":                "tre volte al giorno",
		"daily":                            "ogni giorno",
		"every":                            "ogni",
		"hours":                            "ore",
		"days":                             "giorni",
		"weeks":                            "settimane",
		"take":                             "prenda",
		"medication":                       "farmaco",
		"pain":                             "dolore",
		"fever":                            "febbre",
		"nausea":                           "nausea",
		"vomiting":                         "vomito",
		"bleeding":                         "sanguinamento",
		"swelling":                         "gonfiore",
		"dizziness":                        "vertigini",
		"pneumonia":                        "polmonite",
		"infection":                        "infezione",
		"doctor":                           "medico",
		"in":                               "tra",
		"with":                             "con",
		"and":                              "e",
		"for":                              "per",
	},
	"pt": {
		"take medication twice daily":      "tome o medicamento duas vezes ao dia",
		"by mouth every 8 hours as needed": "por via oral a cada 8 horas se necessário",
		"by mouth":                         "por via oral",
		"follow up with your doctor":       "acompanhamento com o seu médico",
		"follow up with doctor":            "acompanhamento com o médico",
		"follow up":                        "acompanhamento",
		"return to the emergency room":     "volte ao pronto-socorro",
		"call your doctor":                 "ligue para o seu médico",
		"chest pain":                       "dor no peito",
		"shortness of breath":              "falta de ar",
		"heart failure":                    "insuficiência cardíaca",
		"blood pressure":                   "pressão arterial",
		"rest at home":                     "descanse em casa",
		"drink plenty of fluids":           "beba bastante líquido",
		"as needed":                        "se necessário",
		"once daily":                       "uma vez ao dia",
		"twice daily":                      "duas vezes ao dia",
		"three times daily":                "três vezes ao dia",
		"daily":                            "diariamente",
		"every":                            "a cada",
		"hours":                            "horas",
		"days":                             "dias",
		"weeks":                            "semanas",
		"take":                             "tome",
		"medication":                       "medicamento",
		"pain":                             "dor",
		"fever":                            "febre",
		"nausea":                           "náusea",
		"vomiting":                         "vômito",
		"bleeding":                         "sangramento",
		"swelling":                         "inchaço",
		"dizziness":                        "tontura",
		"pneumonia":                        "pneumonia",
		"infection":                        "infecção",
		"doctor":                           "médico",
		"in":                               "em",
		"with":                             "com",
		"and":                              "e",
		"for":                              "para",
	},
	"ru": {
		"follow up with doctor": "наблюдение у врача",
		"chest pain":            "боль в груди",
		"shortness of breath":   "одышка",
		"twice daily":           "два раза в день",
		"daily":                 "ежедневно",
		"pain":                  "боль",
		"fever":                 "лихорадка",
		"doctor":                "врач",
		"weeks":                 "недели",
		"medication":            "лекарство",
	},
	"zh": {
		"follow up with doctor": "与医生复诊",
		"chest pain":            "胸痛",
		"shortness of breath":   "呼吸急促",
		"twice daily":           "每日两次",
		"daily":                 "每日",
		"pain":                  "疼痛",
		"fever":                 "发烧",
		"doctor":                "医生",
		"weeks":                 "周",
		"medication":            "药物",
	},
	"ja": {
		"chest pain":          "胸の痛み",
		"shortness of breath": "息切れ",
		"twice daily":         "1日2回",
		"pain":                "痛み",
		"fever":               "発熱",
		"doctor":              "医師",
		"medication":          "薬",
	},
	"ko": {
		"chest pain":          "흉통",
		"shortness of breath": "호흡 곤란",
		"twice daily":         "하루 두 번",
		"pain":                "통증",
		"fever":               "발열",
		"doctor":              "의사",
		"medication":          "약",
	},
	"ar": {
		"chest pain":          "ألم في الصدر",
		"shortness of breath": "ضيق في التنفس",
		"twice daily":         "مرتين يوميا",
		"pain":                "ألم",
		"fever":               "حمى",
		"doctor":              "طبيب",
		"medication":          "دواء",
	},
	"hi": {
		"chest pain":  "सीने में दर्द",
		"twice daily": "दिन में दो बार",
		"pain":        "दर्द",
		"fever":       "बुखार",
		"doctor":      "डॉक्टर",
		"medication":  "दवा",
	},
	"vi": {
		"chest pain":  "đau ngực",
		"twice daily": "hai lần mỗi ngày",
		"pain":        "đau",
		"fever":       "sốt",
		"doctor":      "bác sĩ",
		"medication":  "thuốc",
	},
}
