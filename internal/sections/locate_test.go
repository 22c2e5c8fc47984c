package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-pagefit/internal/document"
	"github.com/jonathan/resume-pagefit/internal/types"
)

func parse(t *testing.T, markup string) *document.Document {
	t.Helper()
	doc, err := document.Parse(markup)
	require.NoError(t, err)
	return doc
}

func TestClassify(t *testing.T) {
	patterns := DefaultPatterns()
	tests := []struct {
		heading  string
		expected types.SectionType
		ok       bool
	}{
		{"Professional Experience", types.SectionJob, true},
		{"EMPLOYMENT HISTORY", types.SectionJob, true},
		{"Work Projects", types.SectionJob, true},
		{"Projects", types.SectionProject, true},
		{"Academic Projects", types.SectionProject, true},
		{"Education", types.SectionEducation, true},
		{"Academic Background", types.SectionEducation, true},
		{"Technical Skills", types.SectionSkills, true},
		{"Core Competencies", types.SectionSkills, true},
		{"Technologies", types.SectionSkills, true},
		{"Interests", "", false},
		{"   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.heading, func(t *testing.T) {
			got, ok := Classify(tt.heading, patterns)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLocate_ListFollowingHeadingUsesBlockAncestor(t *testing.T) {
	doc := parse(t, `<body><section id="exp"><h2>Experience</h2><ul><li>Built APIs</li></ul></section></body>`)

	anchors := Locate(doc, DefaultPatterns())

	a, ok := anchors.Get(types.SectionJob)
	require.True(t, ok)
	assert.Equal(t, "section", doc.Tag(a))

	bullets, err := doc.Bullets(a)
	require.NoError(t, err)
	assert.Equal(t, []string{"Built APIs"}, bullets)
}

func TestLocate_ListWithoutBlockAncestorIsAnchor(t *testing.T) {
	doc := parse(t, `<body><h2>Experience</h2><ul><li>Built APIs</li></ul></body>`)

	anchors := Locate(doc, DefaultPatterns())

	a, ok := anchors.Get(types.SectionJob)
	require.True(t, ok)
	assert.Equal(t, "ul", doc.Tag(a))
}

func TestLocate_SectionNotFound(t *testing.T) {
	doc := parse(t, `<body><h2>Hobbies</h2><ul><li>Chess</li></ul><p>No headings here</p></body>`)

	anchors := Locate(doc, DefaultPatterns())

	_, ok := anchors.Get(types.SectionJob)
	assert.False(t, ok)
	assert.Empty(t, anchors)
	assert.Equal(t, types.AllSectionTypes, anchors.Missing())
}

func TestLocate_FirstHeadingPerTypeWins(t *testing.T) {
	doc := parse(t, `<body>
<section><h2>Experience</h2><ul id="first"><li>First job</li></ul></section>
<section><h2>Work History</h2><ul id="second"><li>Second job</li></ul></section>
</body>`)

	anchors := Locate(doc, DefaultPatterns())

	a, ok := anchors.Get(types.SectionJob)
	require.True(t, ok)
	bullets, err := doc.Bullets(a)
	require.NoError(t, err)
	assert.Equal(t, []string{"First job"}, bullets)
}

func TestLocate_ListNestedInNextSibling(t *testing.T) {
	doc := parse(t, `<body><section id="edu"><h3>Education</h3><div class="entry"><span>BSc</span><ul><li>Thesis on caching</li></ul></div></section></body>`)

	anchors := Locate(doc, DefaultPatterns())

	a, ok := anchors.Get(types.SectionEducation)
	require.True(t, ok)
	assert.Equal(t, "div", doc.Tag(a))
	bullets, err := doc.Bullets(a)
	require.NoError(t, err)
	assert.Equal(t, []string{"Thesis on caching"}, bullets)
}

func TestLocate_ListInParent(t *testing.T) {
	doc := parse(t, `<body><section id="proj"><h2>Projects</h2><p>Selected work</p><ul><li>Wrote a compiler</li></ul></section></body>`)

	anchors := Locate(doc, DefaultPatterns())

	a, ok := anchors.Get(types.SectionProject)
	require.True(t, ok)
	assert.Equal(t, "section", doc.Tag(a))
	assert.True(t, doc.HasList(a))
}

func TestLocate_SkillsProseFallback(t *testing.T) {
	doc := parse(t, `<body><div id="skills"><h2>Skills</h2><p>Go, SQL, Kubernetes</p></div></body>`)

	anchors := Locate(doc, DefaultPatterns())

	a, ok := anchors.Get(types.SectionSkills)
	require.True(t, ok)
	assert.Equal(t, "p", doc.Tag(a))
	assert.False(t, doc.HasList(a))

	heading, err := doc.Heading(a)
	require.NoError(t, err)
	assert.Equal(t, "Skills", heading.Text())
}

func TestLocate_SkillsProseStopsAtNextHeading(t *testing.T) {
	doc := parse(t, `<body><div class="resume"><h2>Skills</h2><h2>Awards</h2><p>Hackathon winner</p></div></body>`)

	a, ok := Locate(doc, DefaultPatterns()).Get(types.SectionSkills)
	require.True(t, ok)
	assert.Equal(t, "div", doc.Tag(a))
}

func TestLocate_ProseOnlyStructuralSectionIsAbsent(t *testing.T) {
	doc := parse(t, `<body><h2>Projects</h2><p>See my GitHub.</p></body>`)

	anchors := Locate(doc, DefaultPatterns())

	_, ok := anchors.Get(types.SectionProject)
	assert.False(t, ok)
}

func TestLocate_SharedWrapperKeepsSectionsDistinct(t *testing.T) {
	doc := parse(t, `<body><div class="page">
<h2>Experience</h2><ul id="jobs"><li>Ran on-call</li></ul>
<h2>Projects</h2><ul id="projects"><li>Wrote a parser</li></ul>
</div></body>`)

	anchors := Locate(doc, DefaultPatterns())

	job, ok := anchors.Get(types.SectionJob)
	require.True(t, ok)
	project, ok := anchors.Get(types.SectionProject)
	require.True(t, ok)
	assert.NotEqual(t, job, project)

	jobBullets, err := doc.Bullets(job)
	require.NoError(t, err)
	projectBullets, err := doc.Bullets(project)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ran on-call"}, jobBullets)
	assert.Equal(t, []string{"Wrote a parser"}, projectBullets)
}

func TestLocate_Idempotent(t *testing.T) {
	markup := `<body>
<section><h2>Experience</h2><ul><li>A</li></ul></section>
<section><h2>Education</h2><ul><li>B</li></ul></section>
</body>`
	doc := parse(t, markup)

	first := Locate(doc, DefaultPatterns())
	before, err := doc.HTML()
	require.NoError(t, err)

	second := Locate(doc, DefaultPatterns())
	after, err := doc.HTML()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, before, after)
}
