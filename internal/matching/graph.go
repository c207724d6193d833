package matching

// Graph holds the static skill relationship and alias tables. A skill's
// relationship entry lists the skills it implies (a frontend framework
// implies its host language); an alias entry expands a technology-stack
// shorthand into its constituent skills (MERN -> MongoDB, Express, React,
// Node.js).
//
// A Graph is immutable after construction and safe for unsynchronized
// concurrent reads.
type Graph struct {
	relationships map[string][]string
	aliases       map[string][]string
	aliasOrder    []string
}

// NewGraph builds a Graph from relationship and alias tables. The tables
// are copied; later mutation of the inputs does not affect the Graph.
// Alias iteration order follows aliasOrder.
func NewGraph(relationships map[string][]string, aliases map[string][]string, aliasOrder []string) *Graph {
	g := &Graph{
		relationships: make(map[string][]string, len(relationships)),
		aliases:       make(map[string][]string, len(aliases)),
		aliasOrder:    make([]string, 0, len(aliasOrder)),
	}
	for skill, implied := range relationships {
		g.relationships[skill] = append([]string(nil), implied...)
	}
	for alias, components := range aliases {
		g.aliases[alias] = append([]string(nil), components...)
	}
	g.aliasOrder = append(g.aliasOrder, aliasOrder...)
	return g
}

// Implied returns the skills directly implied by the given skill, or nil
// if the relationship table has no entry for it.
func (g *Graph) Implied(skill string) []string {
	return g.relationships[skill]
}

// ImpliedAbsent returns, in deterministic order, every skill implied by a
// member of present that is not itself in present. Expansion is one hop:
// implications of the implied skills are not chased.
func (g *Graph) ImpliedAbsent(present []string) []string {
	have := make(map[string]bool, len(present))
	for _, s := range present {
		have[s] = true
	}

	var implied []string
	seen := make(map[string]bool)
	for _, s := range present {
		for _, rel := range g.relationships[s] {
			if !have[rel] && !seen[rel] {
				implied = append(implied, rel)
				seen[rel] = true
			}
		}
	}
	return implied
}

// expand returns the transitive closure of skills under the relationship
// table, starting from the given set. The table is authored and should be
// acyclic, but a visited set guards against an accidental cycle. The
// matching paths stay one hop deep and do not use it.
func (g *Graph) expand(skills []string) []string {
	visited := make(map[string]bool, len(skills))
	var closure []string

	queue := append([]string(nil), skills...)
	for len(queue) > 0 {
		skill := queue[0]
		queue = queue[1:]
		if visited[skill] {
			continue
		}
		visited[skill] = true
		closure = append(closure, skill)
		queue = append(queue, g.relationships[skill]...)
	}
	return closure
}

// AliasNames returns the stack aliases in table order.
func (g *Graph) AliasNames() []string {
	return g.aliasOrder
}

// AliasComponents returns the constituent skills of a stack alias, or nil
// if the alias is unknown.
func (g *Graph) AliasComponents(alias string) []string {
	return g.aliases[alias]
}

// AliasGroupFor returns the alias group containing the given skill as a
// component, if any. Used by the fallback matcher to credit a job skill
// when its stack alias (or a sibling component) appears in the resume.
func (g *Graph) AliasGroupFor(skill string) (alias string, components []string, ok bool) {
	for _, name := range g.aliasOrder {
		for _, component := range g.aliases[name] {
			if component == skill {
				return name, g.aliases[name], true
			}
		}
	}
	return "", nil, false
}

// defaultGraph holds the authored relationship and alias tables. Built once
// at init and shared read-only.
var defaultGraph = NewGraph(
	map[string][]string{
		// Frontend frameworks and their dependencies
		"React":        {"JavaScript", "HTML", "CSS", "JSX"},
		"React.js":     {"JavaScript", "HTML", "CSS", "JSX"},
		"ReactJS":      {"JavaScript", "HTML", "CSS", "JSX"},
		"React Native": {"React", "JavaScript", "Mobile Development"},
		"Angular":      {"TypeScript", "HTML", "CSS", "RxJS"},
		"AngularJS":    {"JavaScript", "HTML", "CSS"},
		"Vue":          {"JavaScript", "HTML", "CSS"},
		"Vue.js":       {"JavaScript", "HTML", "CSS"},
		"Next.js":      {"React", "JavaScript", "Node.js"},
		"Nuxt.js":      {"Vue", "JavaScript", "Node.js"},

		// Backend frameworks and their dependencies
		"Express":       {"Node.js", "JavaScript"},
		"Express.js":    {"Node.js", "JavaScript"},
		"NestJS":        {"Node.js", "TypeScript"},
		"Django":        {"Python"},
		"Flask":         {"Python"},
		"FastAPI":       {"Python"},
		"Spring":        {"Java"},
		"Spring Boot":   {"Java", "Spring"},
		"ASP.NET":       {"C#"},
		".NET":          {"C#"},
		".NET Core":     {"C#"},
		"Laravel":       {"PHP"},
		"Ruby on Rails": {"Ruby"},

		// Mobile
		"Flutter": {"Dart", "Mobile Development"},
		"iOS":     {"Swift", "Objective-C", "Mobile Development"},
		"Android": {"Java", "Kotlin", "Mobile Development"},
		"Xamarin": {"C#", "Mobile Development"},

		// Data science
		"TensorFlow":   {"Python", "Machine Learning"},
		"PyTorch":      {"Python", "Machine Learning"},
		"Pandas":       {"Python", "Data Analysis"},
		"NumPy":        {"Python", "Data Analysis"},
		"Scikit-learn": {"Python", "Machine Learning"},

		// Databases
		"MongoDB":    {"NoSQL", "Database"},
		"MySQL":      {"SQL", "Database"},
		"PostgreSQL": {"SQL", "Database"},
		"Redis":      {"NoSQL", "Caching"},

		// Cloud
		"AWS":          {"Cloud Computing"},
		"Azure":        {"Cloud Computing"},
		"GCP":          {"Cloud Computing"},
		"Google Cloud": {"Cloud Computing"},

		// DevOps
		"Docker":     {"Containerization", "DevOps"},
		"Kubernetes": {"Container Orchestration", "DevOps"},
		"Jenkins":    {"CI/CD", "DevOps"},
		"Terraform":  {"Infrastructure as Code", "DevOps"},
	},
	map[string][]string{
		"MERN":                    {"MongoDB", "Express", "React", "Node.js"},
		"MEAN":                    {"MongoDB", "Express", "Angular", "Node.js"},
		"LAMP":                    {"Linux", "Apache", "MySQL", "PHP"},
		"JAMstack":                {"JavaScript", "API", "Markup"},
		"Full Stack":              {"Frontend", "Backend", "Database"},
		"Frontend":                {"HTML", "CSS", "JavaScript"},
		"Backend":                 {"Server-side", "API", "Database"},
		"DevOps":                  {"CI/CD", "Docker", "Kubernetes"},
		"Machine Learning":        {"ML", "AI", "Data Science"},
		"Artificial Intelligence": {"AI", "Machine Learning"},
		"UI/UX":                   {"User Interface", "User Experience", "Design"},
		"REST":                    {"REST API", "RESTful API"},
		"GraphQL":                 {"Graph Query Language"},
		"SQL":                     {"Structured Query Language", "Database"},
		"NoSQL":                   {"Non-relational Database"},
		"Git":                     {"Version Control", "Source Control"},
		"Agile":                   {"Scrum", "Kanban", "Agile Methodology"},
	},
	[]string{
		"MERN", "MEAN", "LAMP", "JAMstack", "Full Stack", "Frontend",
		"Backend", "DevOps", "Machine Learning", "Artificial Intelligence",
		"UI/UX", "REST", "GraphQL", "SQL", "NoSQL", "Git", "Agile",
	},
)

// DefaultGraph returns the authored skill relationship and alias tables.
func DefaultGraph() *Graph {
	return defaultGraph
}
