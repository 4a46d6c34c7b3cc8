package styles

import "github.com/ahrav/go-newsdesk/internal/domain"

// Built-in style identifiers.
const (
	// StyleExpress is the tabloid-leaning express.de house style.
	StyleExpress = "express"

	// StyleKSTA is the sober ksta.de house style.
	StyleKSTA = "ksta"
)

// Express returns the built-in express.de profile: active, pointed boulevard
// tone with short sentences, a tight headline budget, and a compact word range.
func Express() domain.StyleProfile {
	return domain.StyleProfile{
		ID:   StyleExpress,
		Site: "express.de",
		Tone: "aktiv, zugespitzt, boulevardesk aber faktentreu; kurze Sätze, klare Verben",
		Headline: domain.HeadlineRules{
			MaxChars:         60,
			AllowExclamation: true,
		},
		LengthWords: domain.LengthRules{MinWords: 50, MaxWords: 160},
		Structure:   []string{"headline", "lead", "body_paragraphs", "callout_optional?"},
		FactsPolicy: "keine neuen Fakten, nur Quelle",
		FewShots: []domain.ExampleArticle{
			{
				Headline:     "Messer-Drama in Bedburg: Heftiger Fund – Haftbefehl",
				TeaserOrLead: "Nachbarschaftsstreit mit Folgen: 34-Jähriger festgenommen, Messerteil im Körper des Opfers entdeckt.",
				BodyParagraphs: []string{
					"Die Kölner Polizei nahm am Freitagnachmittag (17. Oktober) in Bedburg-Kirchherten einen 34-jährigen Mann fest. Ihm wird ein versuchtes Tötungsdelikt vorgeworfen.",
					"Der Beschuldigte soll am Dienstag (14. Oktober) seinen 43-jährigen Nachbarn mit einem Messer in den Oberkörper gestochen und schwer verletzt haben. Ein Haftbefehl wurde vollstreckt.",
					"Bewohner eines Mehrfamilienhauses alarmierten gegen 20 Uhr die Polizei. Bei einer Operation entdeckten Ärzte später eine abgebrochene Messerspitze im Oberkörper des Opfers.",
				},
			},
			{
				Headline:     "8400 Personen kontrolliert: Mega-Einsatz in Düsseldorf",
				TeaserOrLead: "Schwerpunktkontrollen bis in die Nacht – Altstadt und Süden im Fokus.",
				BodyParagraphs: []string{
					"Die Düsseldorfer Polizei nahm am Freitag (10. Oktober 2025) die Gewaltkriminalität ins Visier. Bei einem Großeinsatz wurden rund 8400 Personen kontrolliert.",
					"Besonderes Augenmerk lag auf der Waffenverbotszone in der Altstadt. Ab 20 Uhr kontrollierten Einsatzkräfte an den U-Bahn-Aufgängen am Bolker Stern und tasteten Taschen sowie Rucksäcke ab.",
					"Für genauere Durchsuchungen standen Zelte bereit. Die Maßnahmen dauerten bis in die späte Nacht.",
				},
			},
			{
				Headline:     "Vor WM-Quali: Polizei wollte Nationalspieler verhaften",
				TeaserOrLead: "Beamte stürmen Kabine Nicaraguas in San José kurz vor dem Anpfiff.",
				BodyParagraphs: []string{
					"Unmittelbar vor dem WM-Qualifikationsspiel zwischen Costa Rica und Nicaragua kam es in San José zu einem Polizeieinsatz in der Umkleide der Gäste.",
					"Ziel war die Verhaftung eines Nationalspielers. Laut Polizei lag ein Gerichtsbeschluss wegen Unterhaltsforderungen vor.",
					"Mehrere Medien berichteten übereinstimmend über den Vorfall, bestätigte Angaben machte Polizeidirektor Marlon Cubillo.",
				},
			},
		},
	}
}

// KSTA returns the built-in ksta.de profile: sober, factual, neutral wording
// with a longer word range and no exclamation marks in headlines.
func KSTA() domain.StyleProfile {
	return domain.StyleProfile{
		ID:   StyleKSTA,
		Site: "ksta.de",
		Tone: "nüchtern, sachlich, informativ; neutrale Wortwahl, keine Zuspitzung",
		Headline: domain.HeadlineRules{
			MaxChars:         70,
			AllowExclamation: false,
		},
		LengthWords: domain.LengthRules{MinWords: 100, MaxWords: 220},
		Structure:   []string{"headline", "teaser", "body_paragraphs", "context_optional?"},
		FactsPolicy: "keine neuen Fakten; ausschließlich Inhalte aus der vorliegenden Meldung; behördliche Angaben kenntlich machen",
		FewShots: []domain.ExampleArticle{
			{
				Headline:     "Sieben Verletzte bei Unfall im A57-Herkulestunnel – mutmaßliches Autorennen",
				TeaserOrLead: "Der Herkulestunnel in Köln war am Samstagabend für mehrere Stunden gesperrt. Sieben Menschen wurden leicht verletzt.",
				BodyParagraphs: []string{
					"Bei einem mutmaßlichen Autorennen auf der Bundesautobahn 57 in Köln sind am Samstagabend (18. Oktober) sieben Personen leicht verletzt worden. Für Rettungs- und Aufräumarbeiten wurde der Herkulestunnel mehrere Stunden gesperrt.",
					"Nach Angaben von Zeuginnen und Zeugen soll der 22-jährige Fahrer eines grauen Audi RS 3 gegen 23 Uhr zeitweise mit mehr als 170 km/h in Richtung Innenstadt unterwegs gewesen sein. Im Tunnel verlor er demnach die Kontrolle und kollidierte mit einem Renault Captur, den ein 44-Jähriger steuerte.",
					"Im Audi saßen zwei weitere Männer (17 und 21 Jahre), im Renault vier Personen (15, 52, 71 und 77 Jahre). Alle Beteiligten – mit Ausnahme des 17-jährigen Beifahrers – erlitten leichte Verletzungen. Die Unfallaufnahme und Spurensicherung dauerten bis Sonntagmorgen 7.30 Uhr an. Gegen den Audi-Fahrer wird wegen des Verdachts eines verbotenen Kraftfahrzeugrennens ermittelt.",
				},
			},
			{
				Headline:     "Steinwurf von Autobahnbrücke: Ehepaar aus Köln auf der A61 unverletzt – Polizei sucht Zeugen",
				TeaserOrLead: "Ein von einer Brücke geworfener Stein traf am Sonntagnachmittag die Windschutzscheibe eines Pkw. Verletzt wurde niemand.",
				BodyParagraphs: []string{
					"Ein Kölner Ehepaar ist am Sonntag (19. Oktober) gegen 14.45 Uhr auf der A61 bei Armsheim von einem Stein getroffen worden, der von einer Autobahnbrücke geworfen wurde. Die Windschutzscheibe des Fahrzeugs wurde getroffen; Personen- oder Sachschaden entstand nicht.",
					"Nach Angaben der Polizei standen zwei Kinder auf der Brücke und warfen einen kleinen Stein auf die Fahrbahn. Die Polizei ermittelt wegen des gefährlichen Eingriffs in den Straßenverkehr und bittet Zeuginnen und Zeugen um Hinweise.",
					"Relevante Beobachtungen zur Tatzeit oder Angaben zur Identität der Kinder nimmt jede Polizeidienststelle entgegen. Ermittlungen dauern an.",
				},
			},
			{
				Headline:     "Schwerpunktkontrollen in Kölner Altstadt – Waffenverbotszone im Fokus",
				TeaserOrLead: "Die Polizei führte in den Abendstunden Kontrollen in der Altstadt durch. Ziel war die Überprüfung der Einhaltung der Waffenverbotszone.",
				BodyParagraphs: []string{
					"Die Polizei Köln hat in den Abendstunden Schwerpunktkontrollen in der Altstadt durchgeführt. Im Mittelpunkt stand die Einhaltung der bestehenden Waffenverbotszone. Laut Polizei wurden Personen stichprobenartig überprüft und mitgeführte Taschen kontrolliert.",
					"Ziel der Maßnahme war die Prävention von Gewaltdelikten und die Stärkung des Sicherheitsempfindens. Die Ergebnisse der Kontrollen wertet die Polizei derzeit aus; zu möglichen Verstößen lagen zunächst keine weiteren Angaben vor.",
					"Die Polizei kündigte an, vergleichbare Kontrollen fortzusetzen. Hinweise aus der Bevölkerung werden entgegengenommen.",
				},
			},
		},
	}
}
