package matching

// canonicalNicknames maps a canonical given name to its common short forms.
// The reverse direction (nickname -> canonical) is derived once at init so
// lookups work regardless of which form appears in source text. A name can
// appear as a nickname of more than one canonical form ("abby" for both
// Abigail and Abby-as-given-name is handled by the identity fallback in
// NameVariants).
var canonicalNicknames = map[string][]string{
	"abigail":     {"abby", "gail"},
	"albert":      {"al", "bert", "bertie"},
	"alexander":   {"alex", "al", "sasha", "xander"},
	"alexandra":   {"alex", "sandra", "sasha", "lexi"},
	"alfred":      {"al", "fred", "freddie"},
	"allison":     {"allie", "ally"},
	"amanda":      {"mandy", "amy"},
	"andrew":      {"andy", "drew"},
	"anthony":     {"tony", "ant"},
	"barbara":     {"barb", "barbie", "babs"},
	"benjamin":    {"ben", "benny", "benji"},
	"bernard":     {"bernie", "bern"},
	"bradley":     {"brad"},
	"caroline":    {"carrie", "carol", "caro"},
	"catherine":   {"cathy", "cate", "kate", "katie", "cat"},
	"charles":     {"charlie", "chuck", "chas"},
	"christina":   {"chris", "christy", "tina"},
	"christopher": {"chris", "topher", "kit"},
	"cynthia":     {"cindy", "cyn"},
	"daniel":      {"dan", "danny"},
	"david":       {"dave", "davey"},
	"deborah":     {"deb", "debbie"},
	"dennis":      {"denny", "den"},
	"donald":      {"don", "donny"},
	"dorothy":     {"dot", "dottie"},
	"douglas":     {"doug"},
	"edward":      {"ed", "eddie", "ted", "teddy", "ned"},
	"eleanor":     {"ellie", "nell", "nora"},
	"elizabeth":   {"liz", "lizzie", "beth", "betty", "eliza", "betsy", "libby"},
	"eugene":      {"gene"},
	"florence":    {"flo", "flossie"},
	"frances":     {"fran", "frannie"},
	"francis":     {"frank", "fran"},
	"frederick":   {"fred", "freddie", "freddy"},
	"gabriel":     {"gabe"},
	"gerald":      {"gerry", "jerry"},
	"gregory":     {"greg"},
	"harold":      {"harry", "hal"},
	"henry":       {"hank", "harry", "hal"},
	"isabella":    {"izzy", "bella"},
	"jacob":       {"jake"},
	"james":       {"jim", "jimmy", "jamie"},
	"janet":       {"jan"},
	"jeffrey":     {"jeff"},
	"jennifer":    {"jen", "jenny"},
	"jessica":     {"jess", "jessie"},
	"john":        {"jack", "johnny", "jon"},
	"jonathan":    {"jon", "jonny", "nathan"},
	"joseph":      {"joe", "joey"},
	"joshua":      {"josh"},
	"judith":      {"judy"},
	"katherine":   {"kate", "katie", "kathy", "kat", "kitty"},
	"kenneth":     {"ken", "kenny"},
	"kimberly":    {"kim"},
	"lawrence":    {"larry", "laurie"},
	"leonard":     {"leo", "len", "lenny"},
	"louis":       {"lou", "louie"},
	"madeline":    {"maddie"},
	"margaret":    {"maggie", "meg", "peggy", "margo", "greta"},
	"martin":      {"marty"},
	"matthew":     {"matt", "matty"},
	"maximilian":  {"max"},
	"megan":       {"meg"},
	"melissa":     {"mel", "missy"},
	"michael":     {"mike", "mikey", "mick"},
	"nancy":       {"nan"},
	"natalie":     {"nat", "tallie"},
	"nathaniel":   {"nate", "nat", "nathan"},
	"nicholas":    {"nick", "nicky"},
	"nicole":      {"nikki", "nic"},
	"oliver":      {"ollie"},
	"pamela":      {"pam"},
	"patricia":    {"pat", "patty", "trish", "tricia"},
	"patrick":     {"pat", "paddy", "rick"},
	"peter":       {"pete"},
	"philip":      {"phil"},
	"phillip":     {"phil"},
	"rachel":      {"rae"},
	"raymond":     {"ray"},
	"rebecca":     {"becky", "becca"},
	"richard":     {"rick", "ricky", "rich", "dick"},
	"robert":      {"rob", "bob", "bobby", "robbie", "bert"},
	"ronald":      {"ron", "ronnie"},
	"russell":     {"russ", "rusty"},
	"samantha":    {"sam", "sammy"},
	"samuel":      {"sam", "sammy"},
	"sandra":      {"sandy"},
	"sidney":      {"sid"},
	"stephanie":   {"steph", "stephie"},
	"stephen":     {"steve", "steven"},
	"steven":      {"steve", "stevie"},
	"stuart":      {"stu"},
	"susan":       {"sue", "susie", "suzy"},
	"teresa":      {"terry", "tess"},
	"theodore":    {"ted", "teddy", "theo"},
	"thomas":      {"tom", "tommy"},
	"timothy":     {"tim", "timmy"},
	"valerie":     {"val"},
	"victoria":    {"vicky", "tori", "vic"},
	"vincent":     {"vince", "vinny"},
	"virginia":    {"ginny", "ginger"},
	"walter":      {"walt", "wally"},
	"william":     {"will", "bill", "billy", "willie", "liam"},
	"zachary":     {"zach", "zack"},
}

// nameVariantTable is the bidirectional view of canonicalNicknames, built
// once at init and never mutated afterwards.
var nameVariantTable = buildVariantTable()

func buildVariantTable() map[string][]string {
	table := make(map[string][]string, len(canonicalNicknames)*4)
	add := func(key, variant string) {
		for _, existing := range table[key] {
			if existing == variant {
				return
			}
		}
		table[key] = append(table[key], variant)
	}
	for canonical, nicks := range canonicalNicknames {
		for _, nick := range nicks {
			add(canonical, nick)
			add(nick, canonical)
		}
	}
	return table
}

// NameVariants returns the normalized first name plus every known
// nickname/canonical equivalent. Names absent from the table degrade to a
// singleton containing just the normalized name.
func NameVariants(firstName string) []string {
	name := Normalize(firstName)
	if name == "" {
		return nil
	}
	variants := []string{name}
	for _, v := range nameVariantTable[name] {
		if v != name {
			variants = append(variants, v)
		}
	}
	return variants
}

// variantsIntersect reports whether two first names share at least one
// variant, i.e. one is a known nickname or canonical form of the other.
func variantsIntersect(a, b string) bool {
	av := NameVariants(a)
	bv := NameVariants(b)
	set := make(map[string]struct{}, len(av))
	for _, v := range av {
		set[v] = struct{}{}
	}
	for _, v := range bv {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}
