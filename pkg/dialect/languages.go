package dialect

// builtin is a representative subset of the published Gherkin translations.
// Additional languages can be added at runtime with Register.
var builtin = []*Dialect{
	{
		Language:        "en",
		Name:            "English",
		Feature:         []string{"Feature", "Business Need", "Ability"},
		Rule:            []string{"Rule"},
		Background:      []string{"Background"},
		Scenario:        []string{"Scenario", "Example"},
		ScenarioOutline: []string{"Scenario Outline", "Scenario Template"},
		Examples:        []string{"Examples", "Scenarios"},
		Given:           []string{"Given ", "* "},
		When:            []string{"When ", "* "},
		Then:            []string{"Then ", "* "},
		And:             []string{"And ", "* "},
		But:             []string{"But ", "* "},
	},
	{
		Language:        "fr",
		Name:            "français",
		Feature:         []string{"Fonctionnalité", "Fonctionnalite"},
		Rule:            []string{"Règle"},
		Background:      []string{"Contexte"},
		Scenario:        []string{"Scénario", "Exemple"},
		ScenarioOutline: []string{"Plan du scénario", "Plan du Scénario"},
		Examples:        []string{"Exemples"},
		Given:           []string{"Soit ", "Sachant que ", "Etant donné que ", "Etant donné ", "Étant donné que ", "Étant donné ", "* "},
		When:            []string{"Quand ", "Lorsque ", "Lorsqu'", "* "},
		Then:            []string{"Alors ", "Donc ", "* "},
		And:             []string{"Et que ", "Et ", "* "},
		But:             []string{"Mais que ", "Mais ", "* "},
	},
	{
		Language:        "de",
		Name:            "Deutsch",
		Feature:         []string{"Funktionalität", "Funktion"},
		Rule:            []string{"Regel"},
		Background:      []string{"Grundlage", "Hintergrund"},
		Scenario:        []string{"Szenario", "Beispiel"},
		ScenarioOutline: []string{"Szenariogrundriss", "Szenarien"},
		Examples:        []string{"Beispiele"},
		Given:           []string{"Angenommen ", "Gegeben sei ", "Gegeben seien ", "* "},
		When:            []string{"Wenn ", "* "},
		Then:            []string{"Dann ", "* "},
		And:             []string{"Und ", "* "},
		But:             []string{"Aber ", "* "},
	},
	{
		Language:        "es",
		Name:            "español",
		Feature:         []string{"Característica"},
		Rule:            []string{"Regla"},
		Background:      []string{"Antecedentes"},
		Scenario:        []string{"Escenario", "Ejemplo"},
		ScenarioOutline: []string{"Esquema del escenario"},
		Examples:        []string{"Ejemplos"},
		Given:           []string{"Dado ", "Dada ", "Dados ", "Dadas ", "* "},
		When:            []string{"Cuando ", "* "},
		Then:            []string{"Entonces ", "* "},
		And:             []string{"Y ", "E ", "* "},
		But:             []string{"Pero ", "* "},
	},
	{
		Language:        "pt",
		Name:            "português",
		Feature:         []string{"Funcionalidade", "Característica"},
		Rule:            []string{"Regra"},
		Background:      []string{"Contexto", "Cenário de Fundo", "Fundo"},
		Scenario:        []string{"Cenário", "Cenario", "Exemplo"},
		ScenarioOutline: []string{"Esquema do Cenário", "Esquema do Cenario"},
		Examples:        []string{"Exemplos", "Cenários"},
		Given:           []string{"Dado ", "Dada ", "Dados ", "Dadas ", "* "},
		When:            []string{"Quando ", "* "},
		Then:            []string{"Então ", "Entao ", "* "},
		And:             []string{"E ", "* "},
		But:             []string{"Mas ", "* "},
	},
}
