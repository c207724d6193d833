package matching

import "regexp"

// defaultVocabulary is the fixed list of known technology names scanned
// for in resume text. Entries keep their display casing; matching is
// case-insensitive on whole-word boundaries.
var defaultVocabulary = []string{
	// Frontend
	"React", "React.js", "ReactJS", "React Native", "JavaScript", "TypeScript", "HTML", "CSS", "SCSS", "SASS",
	"Angular", "AngularJS", "Vue", "Vue.js", "Svelte", "jQuery", "Bootstrap", "Tailwind CSS", "Material UI",
	"Redux", "MobX", "Zustand", "Context API", "Next.js", "Nuxt.js", "Gatsby", "Webpack", "Vite", "Parcel",

	// Backend
	"Node.js", "Express", "Express.js", "Koa", "Fastify", "NestJS", "Socket.io",
	"Python", "Django", "Flask", "FastAPI", "Tornado", "Pyramid",
	"Java", "Spring", "Spring Boot", "Hibernate", "Maven", "Gradle",
	"C#", "ASP.NET", ".NET", ".NET Core", "Entity Framework",
	"PHP", "Laravel", "Symfony", "CodeIgniter", "Zend",
	"Ruby", "Ruby on Rails", "Sinatra",
	"Go", "Gin", "Echo", "Fiber",
	"Rust", "Actix", "Rocket", "Warp",
	"C++", "C", "Swift", "Kotlin", "Scala", "Clojure", "Elixir", "Erlang",

	// Databases
	"MongoDB", "MySQL", "PostgreSQL", "SQLite", "Redis", "Cassandra", "DynamoDB", "Firebase",
	"SQL", "NoSQL", "GraphQL", "Prisma", "Mongoose", "Sequelize", "TypeORM",

	// Cloud & DevOps
	"AWS", "Azure", "GCP", "Google Cloud", "Docker", "Kubernetes", "Jenkins", "CI/CD",
	"Terraform", "Ansible", "Chef", "Puppet", "Nginx", "Apache", "Linux", "Ubuntu", "CentOS",

	// Mobile
	"Flutter", "Dart", "iOS", "Android", "Objective-C",
	"Xamarin", "Ionic", "Cordova", "PhoneGap",

	// Data science & AI
	"TensorFlow", "PyTorch", "Keras", "Scikit-learn", "Pandas", "NumPy", "Matplotlib", "Seaborn",
	"Jupyter", "R", "MATLAB", "Spark", "Hadoop", "Kafka",

	// Tools & practices
	"Git", "GitHub", "GitLab", "Bitbucket", "SVN", "REST API", "SOAP", "Microservices",
	"Agile", "Scrum", "Kanban", "JIRA", "Confluence", "Slack", "Teams",
	"Unity", "Unreal Engine", "Blender", "Photoshop", "Figma", "Sketch",
}

// vocabularyPatterns holds one compiled whole-word pattern per vocabulary
// entry, built once at init.
var vocabularyPatterns = compileWordPatterns(defaultVocabulary)

func compileWordPatterns(terms []string) map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(terms))
	for _, term := range terms {
		patterns[term] = wordPattern(term)
	}
	return patterns
}

// wordPattern compiles a case-insensitive whole-word pattern for a term.
func wordPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
}

// ExtractSkills scans resume text for known technology names and stack
// aliases. A vocabulary entry counts when it appears as a whole word; an
// alias counts when it appears bare or followed by "stack", and brings in
// all of its constituent skills. The result is deduplicated and ordered:
// vocabulary hits in vocabulary order, then alias hits with their
// components in alias-table order.
func ExtractSkills(text string, graph *Graph) []string {
	var extracted []string
	seen := make(map[string]bool)

	for _, skill := range defaultVocabulary {
		if seen[skill] {
			continue
		}
		if vocabularyPatterns[skill].MatchString(text) {
			extracted = append(extracted, skill)
			seen[skill] = true
		}
	}

	for _, alias := range graph.AliasNames() {
		if !aliasMentioned(text, alias) {
			continue
		}
		if !seen[alias] {
			extracted = append(extracted, alias)
			seen[alias] = true
		}
		for _, component := range graph.AliasComponents(alias) {
			if !seen[component] {
				extracted = append(extracted, component)
				seen[component] = true
			}
		}
	}

	return extracted
}

// aliasMentioned reports whether a stack alias appears in the text, either
// bare ("MERN") or with a stack suffix ("MERN stack").
func aliasMentioned(text, alias string) bool {
	return wordPattern(alias).MatchString(text) ||
		wordPattern(alias+" stack").MatchString(text)
}
