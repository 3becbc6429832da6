package curriculum

// DefaultStandards returns the built-in standard set covering grades 3-6 in
// mathematics and english plus grades 3-5 in science and social studies.
// Hosts with a full district catalog supply their own Catalog instead.
func DefaultStandards() []Standard {
	return []Standard{
		// Mathematics, grade 3
		{
			ID: "math-3-pv", Subject: SubjectMath, GradeLevel: 3, Domain: "place-value",
			Title:       "Place Value to 1,000",
			Description: "Read, write and compare numbers to 1,000 using place value understanding.",
			Difficulty:  2, EstimatedMinutes: 25,
			LearningObjectives: []string{"compare three-digit numbers", "round to nearest ten"},
		},
		{
			ID: "math-3-addsub", Subject: SubjectMath, GradeLevel: 3, Domain: "addition-subtraction",
			Title:           "Multi-Digit Addition and Subtraction",
			Description:     "Fluently add and subtract within 1,000 using strategies based on place value.",
			PrerequisiteIDs: []string{"math-3-pv"},
			Difficulty:      3, EstimatedMinutes: 30,
			LearningObjectives: []string{"add within 1,000", "subtract with regrouping"},
		},
		{
			ID: "math-3-mult", Subject: SubjectMath, GradeLevel: 3, Domain: "multiplication-division",
			Title:           "Multiplication and Division Facts",
			Description:     "Understand multiplication as repeated addition and division as its inverse.",
			PrerequisiteIDs: []string{"math-3-addsub"},
			Difficulty:      4, EstimatedMinutes: 30,
			LearningObjectives: []string{"recall facts to 10x10", "relate multiplication to division"},
		},
		{
			ID: "math-3-frac", Subject: SubjectMath, GradeLevel: 3, Domain: "fractions",
			Title:           "Fractions as Parts of a Whole",
			Description:     "Understand unit fractions and represent fractions on a number line.",
			PrerequisiteIDs: []string{"math-3-pv"},
			Difficulty:      4, EstimatedMinutes: 30,
			LearningObjectives: []string{"identify unit fractions", "place fractions on a number line"},
		},
		{
			ID: "math-3-geom", Subject: SubjectMath, GradeLevel: 3, Domain: "geometry",
			Title:       "Shapes and Their Attributes",
			Description: "Classify two-dimensional shapes by attributes and find area of rectangles.",
			Difficulty:  3, EstimatedMinutes: 25,
			LearningObjectives: []string{"classify quadrilaterals", "measure area by counting squares"},
		},

		// Mathematics, grade 4
		{
			ID: "math-4-pv", Subject: SubjectMath, GradeLevel: 4, Domain: "place-value",
			Title:           "Place Value to 1,000,000",
			Description:     "Generalize place value understanding for multi-digit whole numbers.",
			PrerequisiteIDs: []string{"math-3-pv"},
			Difficulty:      3, EstimatedMinutes: 25,
			LearningObjectives: []string{"compare multi-digit numbers", "round to any place"},
		},
		{
			ID: "math-4-mult", Subject: SubjectMath, GradeLevel: 4, Domain: "multiplication-division",
			Title:           "Multi-Digit Multiplication",
			Description:     "Multiply multi-digit numbers using place value strategies and the standard algorithm.",
			PrerequisiteIDs: []string{"math-3-mult", "math-4-pv"},
			Difficulty:      5, EstimatedMinutes: 35,
			LearningObjectives: []string{"multiply up to four digits by one digit", "multiply two two-digit numbers"},
		},
		{
			ID: "math-4-div", Subject: SubjectMath, GradeLevel: 4, Domain: "multiplication-division",
			Title:           "Long Division with Remainders",
			Description:     "Divide multi-digit dividends by one-digit divisors with remainders.",
			PrerequisiteIDs: []string{"math-4-mult"},
			Difficulty:      6, EstimatedMinutes: 35,
			LearningObjectives: []string{"divide with remainders", "interpret remainders in context"},
		},
		{
			ID: "math-4-frac", Subject: SubjectMath, GradeLevel: 4, Domain: "fractions",
			Title:           "Equivalent Fractions and Comparison",
			Description:     "Explain fraction equivalence and compare fractions with different denominators.",
			PrerequisiteIDs: []string{"math-3-frac"},
			Difficulty:      5, EstimatedMinutes: 30,
			LearningObjectives: []string{"generate equivalent fractions", "compare fractions using benchmarks"},
		},
		{
			ID: "math-4-geom", Subject: SubjectMath, GradeLevel: 4, Domain: "geometry",
			Title:           "Angles and Lines",
			Description:     "Draw and identify lines and angles; classify shapes by line and angle properties.",
			PrerequisiteIDs: []string{"math-3-geom"},
			Difficulty:      4, EstimatedMinutes: 25,
			LearningObjectives: []string{"measure angles in degrees", "identify parallel and perpendicular lines"},
		},

		// Mathematics, grade 5
		{
			ID: "math-5-dec", Subject: SubjectMath, GradeLevel: 5, Domain: "decimals",
			Title:           "Decimal Place Value and Operations",
			Description:     "Read, write and operate on decimals to thousandths.",
			PrerequisiteIDs: []string{"math-4-pv"},
			Difficulty:      4, EstimatedMinutes: 30,
			LearningObjectives: []string{"compare decimals to thousandths", "add and subtract decimals"},
		},
		{
			ID: "math-5-frac", Subject: SubjectMath, GradeLevel: 5, Domain: "fractions",
			Title:           "Fraction Addition and Subtraction",
			Description:     "Add and subtract fractions with unlike denominators using equivalent fractions.",
			PrerequisiteIDs: []string{"math-4-frac"},
			Difficulty:      6, EstimatedMinutes: 35,
			LearningObjectives: []string{"add unlike denominators", "solve fraction word problems"},
		},
		{
			ID: "math-5-multfrac", Subject: SubjectMath, GradeLevel: 5, Domain: "fractions",
			Title:           "Fraction Multiplication and Division",
			Description:     "Multiply fractions and divide unit fractions by whole numbers.",
			PrerequisiteIDs: []string{"math-5-frac", "math-4-div"},
			Difficulty:      7, EstimatedMinutes: 35,
			LearningObjectives: []string{"multiply a fraction by a fraction", "divide unit fractions"},
		},
		{
			ID: "math-5-geom", Subject: SubjectMath, GradeLevel: 5, Domain: "geometry",
			Title:           "Volume and the Coordinate Plane",
			Description:     "Understand volume of rectangular prisms and graph points on the coordinate plane.",
			PrerequisiteIDs: []string{"math-4-geom"},
			Difficulty:      5, EstimatedMinutes: 30,
			LearningObjectives: []string{"compute volume", "plot coordinate pairs"},
		},

		// Mathematics, grade 6
		{
			ID: "math-6-ratio", Subject: SubjectMath, GradeLevel: 6, Domain: "ratios",
			Title:           "Ratios and Rates",
			Description:     "Understand ratio concepts and use ratio reasoning to solve problems.",
			PrerequisiteIDs: []string{"math-5-multfrac"},
			Difficulty:      4, EstimatedMinutes: 30,
			LearningObjectives: []string{"write ratios three ways", "solve unit rate problems"},
		},
		{
			ID: "math-6-expr", Subject: SubjectMath, GradeLevel: 6, Domain: "expressions",
			Title:           "Expressions and Variables",
			Description:     "Write, read and evaluate expressions in which letters stand for numbers.",
			PrerequisiteIDs: []string{"math-5-dec"},
			Difficulty:      4, EstimatedMinutes: 30,
			LearningObjectives: []string{"evaluate expressions", "apply order of operations"},
		},
		{
			ID: "math-6-neg", Subject: SubjectMath, GradeLevel: 6, Domain: "number-system",
			Title:           "Negative Numbers and Absolute Value",
			Description:     "Position integers and other rational numbers on the number line; interpret absolute value.",
			PrerequisiteIDs: []string{"math-5-dec"},
			Difficulty:      5, EstimatedMinutes: 30,
			LearningObjectives: []string{"order rational numbers", "interpret absolute value"},
		},

		// English, grade 3
		{
			ID: "ela-3-phonics", Subject: SubjectEnglish, GradeLevel: 3, Domain: "phonics",
			Title:       "Phonics and Word Recognition",
			Description: "Decode multisyllable words and words with common Latin suffixes.",
			Difficulty:  2, EstimatedMinutes: 20,
			LearningObjectives: []string{"decode multisyllable words", "read irregularly spelled words"},
		},
		{
			ID: "ela-3-comp", Subject: SubjectEnglish, GradeLevel: 3, Domain: "reading-comprehension",
			Title:           "Reading Comprehension Basics",
			Description:     "Ask and answer questions about a text, referring explicitly to the text.",
			PrerequisiteIDs: []string{"ela-3-phonics"},
			Difficulty:      3, EstimatedMinutes: 30,
			LearningObjectives: []string{"identify main idea", "recount key details"},
		},
		{
			ID: "ela-3-vocab", Subject: SubjectEnglish, GradeLevel: 3, Domain: "vocabulary",
			Title:           "Vocabulary in Context",
			Description:     "Determine the meaning of unknown words using sentence-level context clues.",
			PrerequisiteIDs: []string{"ela-3-phonics"},
			Difficulty:      3, EstimatedMinutes: 20,
			LearningObjectives: []string{"use context clues", "distinguish literal from nonliteral language"},
		},
		{
			ID: "ela-3-writing", Subject: SubjectEnglish, GradeLevel: 3, Domain: "writing",
			Title:           "Opinion and Narrative Writing",
			Description:     "Write opinion pieces and narratives with organized structure.",
			PrerequisiteIDs: []string{"ela-3-comp"},
			Difficulty:      4, EstimatedMinutes: 35,
			LearningObjectives: []string{"state an opinion with reasons", "sequence narrative events"},
		},

		// English, grade 4
		{
			ID: "ela-4-comp", Subject: SubjectEnglish, GradeLevel: 4, Domain: "reading-comprehension",
			Title:           "Inference and Theme",
			Description:     "Draw inferences from a text and determine theme from details.",
			PrerequisiteIDs: []string{"ela-3-comp"},
			Difficulty:      4, EstimatedMinutes: 30,
			LearningObjectives: []string{"support inferences with evidence", "summarize a text"},
		},
		{
			ID: "ela-4-grammar", Subject: SubjectEnglish, GradeLevel: 4, Domain: "grammar",
			Title:           "Grammar and Sentence Structure",
			Description:     "Use relative pronouns, progressive verb tenses and produce complete sentences.",
			PrerequisiteIDs: []string{"ela-3-writing"},
			Difficulty:      4, EstimatedMinutes: 25,
			LearningObjectives: []string{"correct fragments and run-ons", "use progressive tenses"},
		},
		{
			ID: "ela-4-vocab", Subject: SubjectEnglish, GradeLevel: 4, Domain: "vocabulary",
			Title:           "Greek and Latin Roots",
			Description:     "Use common Greek and Latin affixes and roots as clues to word meaning.",
			PrerequisiteIDs: []string{"ela-3-vocab"},
			Difficulty:      5, EstimatedMinutes: 20,
			LearningObjectives: []string{"decompose words into roots", "apply affix meaning"},
		},

		// English, grade 5
		{
			ID: "ela-5-comp", Subject: SubjectEnglish, GradeLevel: 5, Domain: "reading-comprehension",
			Title:           "Comparing Texts and Points of View",
			Description:     "Compare and contrast stories in the same genre and analyze point of view.",
			PrerequisiteIDs: []string{"ela-4-comp"},
			Difficulty:      5, EstimatedMinutes: 30,
			LearningObjectives: []string{"compare themes across texts", "analyze narrator perspective"},
		},
		{
			ID: "ela-5-writing", Subject: SubjectEnglish, GradeLevel: 5, Domain: "writing",
			Title:           "Informative Writing with Evidence",
			Description:     "Write informative texts that develop a topic with facts, definitions and quotations.",
			PrerequisiteIDs: []string{"ela-4-grammar"},
			Difficulty:      6, EstimatedMinutes: 40,
			LearningObjectives: []string{"group related information", "cite textual evidence"},
		},

		// English, grade 6
		{
			ID: "ela-6-arg", Subject: SubjectEnglish, GradeLevel: 6, Domain: "writing",
			Title:           "Argument Writing",
			Description:     "Write arguments to support claims with clear reasons and relevant evidence.",
			PrerequisiteIDs: []string{"ela-5-writing"},
			Difficulty:      4, EstimatedMinutes: 40,
			LearningObjectives: []string{"state a claim", "address counterclaims"},
		},
		{
			ID: "ela-6-analysis", Subject: SubjectEnglish, GradeLevel: 6, Domain: "reading-comprehension",
			Title:           "Textual Analysis",
			Description:     "Cite textual evidence to support analysis of what a text says explicitly and implicitly.",
			PrerequisiteIDs: []string{"ela-5-comp"},
			Difficulty:      4, EstimatedMinutes: 30,
			LearningObjectives: []string{"cite strongest evidence", "analyze word choice"},
		},

		// Science, grades 3-5
		{
			ID: "sci-3-life", Subject: SubjectScience, GradeLevel: 3, Domain: "life-science",
			Title:       "Life Cycles and Traits",
			Description: "Develop models of organism life cycles and explain inherited traits.",
			Difficulty:  3, EstimatedMinutes: 30,
			LearningObjectives: []string{"model a life cycle", "distinguish inherited from learned traits"},
		},
		{
			ID: "sci-3-forces", Subject: SubjectScience, GradeLevel: 3, Domain: "physical-science",
			Title:       "Forces and Motion",
			Description: "Plan investigations of balanced and unbalanced forces on the motion of an object.",
			Difficulty:  4, EstimatedMinutes: 30,
			LearningObjectives: []string{"predict motion from forces", "investigate magnetic interactions"},
		},
		{
			ID: "sci-4-energy", Subject: SubjectScience, GradeLevel: 4, Domain: "physical-science",
			Title:           "Energy Transfer",
			Description:     "Use evidence to explain how energy is transferred by sound, light, heat and current.",
			PrerequisiteIDs: []string{"sci-3-forces"},
			Difficulty:      5, EstimatedMinutes: 30,
			LearningObjectives: []string{"trace energy transfer", "relate speed to energy"},
		},
		{
			ID: "sci-4-earth", Subject: SubjectScience, GradeLevel: 4, Domain: "earth-science",
			Title:       "Weathering and Erosion",
			Description: "Make observations of weathering and the rate of erosion by water, ice and wind.",
			Difficulty:  4, EstimatedMinutes: 30,
			LearningObjectives: []string{"identify weathering effects", "model erosion"},
		},
		{
			ID: "sci-5-matter", Subject: SubjectScience, GradeLevel: 5, Domain: "physical-science",
			Title:           "Properties of Matter",
			Description:     "Develop models that matter is made of particles too small to be seen.",
			PrerequisiteIDs: []string{"sci-4-energy"},
			Difficulty:      5, EstimatedMinutes: 30,
			LearningObjectives: []string{"model particles", "measure conservation of matter"},
		},
		{
			ID: "sci-5-eco", Subject: SubjectScience, GradeLevel: 5, Domain: "life-science",
			Title:           "Ecosystems and Food Webs",
			Description:     "Model the movement of matter among plants, animals, decomposers and the environment.",
			PrerequisiteIDs: []string{"sci-3-life"},
			Difficulty:      5, EstimatedMinutes: 30,
			LearningObjectives: []string{"build a food web", "explain decomposer roles"},
		},

		// Social studies, grades 3-5
		{
			ID: "soc-3-maps", Subject: SubjectSocialStudies, GradeLevel: 3, Domain: "geography",
			Title:       "Maps and Communities",
			Description: "Use maps to describe how communities are shaped by geography.",
			Difficulty:  2, EstimatedMinutes: 25,
			LearningObjectives: []string{"read a map legend", "compare community types"},
		},
		{
			ID: "soc-4-regions", Subject: SubjectSocialStudies, GradeLevel: 4, Domain: "geography",
			Title:           "Regions and Resources",
			Description:     "Explain how natural resources shape the economy of a region.",
			PrerequisiteIDs: []string{"soc-3-maps"},
			Difficulty:      3, EstimatedMinutes: 25,
			LearningObjectives: []string{"identify regional resources", "connect resources to industry"},
		},
		{
			ID: "soc-5-gov", Subject: SubjectSocialStudies, GradeLevel: 5, Domain: "civics",
			Title:           "Foundations of Government",
			Description:     "Describe the structure and functions of the three branches of government.",
			PrerequisiteIDs: []string{"soc-4-regions"},
			Difficulty:      4, EstimatedMinutes: 30,
			LearningObjectives: []string{"name the branches", "explain checks and balances"},
		},
	}
}

// DefaultCatalog builds the built-in catalog. It panics if the seed itself
// is structurally invalid, which the package tests guard against.
func DefaultCatalog() *StaticCatalog {
	c, err := NewStaticCatalog(DefaultStandards())
	if err != nil {
		panic(err)
	}
	return c
}
