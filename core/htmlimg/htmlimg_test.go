package htmlimg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSrcs(t *testing.T) {
	html := `<p>Intro</p>
<img src="https://x/a.jpg" alt="a">
<figure><img class="wide" src='https://x/b.jpg'/></figure>
<img src=https://x/c.jpg>`

	srcs := ExtractSrcs(html)
	assert.Equal(t, []string{"https://x/a.jpg", "https://x/b.jpg", "https://x/c.jpg"}, srcs)
}

func TestExtractSrcs_NoImages(t *testing.T) {
	assert.Empty(t, ExtractSrcs("<p>words only</p>"))
	assert.Empty(t, ExtractSrcs(""))
}

func TestExtractSrcs_IgnoresSimilarTags(t *testing.T) {
	html := `<imgx src="https://x/not-an-img.jpg"><img src="https://x/real.jpg">`
	assert.Equal(t, []string{"https://x/real.jpg"}, ExtractSrcs(html))
}

func TestExtractSrcs_AngleBracketInsideAttribute(t *testing.T) {
	html := `<img alt="a>b" src="https://x/a.jpg">`
	assert.Equal(t, []string{"https://x/a.jpg"}, ExtractSrcs(html))
}

func TestRemoveTag_AngleBracketInsideAttribute(t *testing.T) {
	html := `<p>keep</p><img alt="5>4" src="https://x/a.jpg"><p>also</p>`
	out := RemoveTag(html, "https://x/a.jpg")
	assert.Equal(t, `<p>keep</p><p>also</p>`, out)
}

func TestRemoveTag_Exact(t *testing.T) {
	html := `<p>before</p><img src="https://x/a.jpg" alt="a"><p>after</p>`
	out := RemoveTag(html, "https://x/a.jpg")
	assert.Equal(t, `<p>before</p><p>after</p>`, out)
}

func TestRemoveTag_RegexMetacharactersAreInert(t *testing.T) {
	// URL contains ( ) + . which are regex metacharacters; removal must
	// match only the literal URL, nothing else in the document.
	html := `<p>text (a+b) stays</p><img src="https://x/(a+b).jpg"><p><img src="https://x/aab.jpg"></p>`
	out := RemoveTag(html, "https://x/(a+b).jpg")
	assert.Equal(t, `<p>text (a+b) stays</p><p><img src="https://x/aab.jpg"></p>`, out)
}

func TestRemoveTag_CollapsesEmptyContainers(t *testing.T) {
	html := `<p>keep</p><figure><img src="https://x/a.jpg"></figure><p> &nbsp; <img src="https://x/a.jpg"> <br/></p>`
	out := RemoveTag(html, "https://x/a.jpg")
	assert.Equal(t, `<p>keep</p>`, out)
}

func TestRemoveTag_NoMatchLeavesDocumentUntouched(t *testing.T) {
	html := `<p></p><img src="https://x/a.jpg">`
	// The pre-existing empty paragraph is none of our business when the
	// URL does not appear.
	assert.Equal(t, html, RemoveTag(html, "https://x/other.jpg"))
}

func TestRemoveTag_CaseSensitiveURL(t *testing.T) {
	html := `<img src="https://x/A.jpg">`
	assert.Equal(t, html, RemoveTag(html, "https://x/a.jpg"))
}

func TestRemoveTag_DoesNotCollapsePre(t *testing.T) {
	html := `<pre>  </pre><img src="https://x/a.jpg">`
	out := RemoveTag(html, "https://x/a.jpg")
	assert.Equal(t, `<pre>  </pre>`, out)
}
