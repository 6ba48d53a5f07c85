package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const homeFixture = `<html><body>
<div id="column-jornalismo">
  <div class="wrapper theme-jornalismo first">
    <a class="post__link" href=" https://g1.globo.com/politica/noticia/2024/05/01/a.ghtml " title="Manchete principal"></a>
  </div>
  <div class="wrapper theme-jornalismo">
    <a class="post__link" href="https://g1.globo.com/economia/b.ghtml?utm=home">
      <h2 class="post__title">  Título   do post  </h2>
    </a>
  </div>
  <div class="wrapper theme-jornalismo">
    <a class="post__link" href="https://g1.globo.com/video/c.html" title="Vídeo"></a>
  </div>
  <div class="wrapper theme-jornalismo">
    <span>sem link</span>
  </div>
  <div class="wrapper theme-jornalismo">
    <a class="post__link" href="https://g1.globo.com/politica/noticia/2024/05/01/a.ghtml" title="Manchete principal"></a>
  </div>
  <div class="wrapper theme-jornalismo">
    <a class="post__link" href="https://g1.globo.com/politica/noticia/2024/05/01/a.ghtml" title="Outro título"></a>
  </div>
</div>
<div id="column-esporte">
  <div class="wrapper theme-jornalismo">
    <a class="post__link" href="https://ge.globo.com/x.ghtml" title="Esporte"></a>
  </div>
</div>
</body></html>`

func TestIsArticle(t *testing.T) {
	assert.True(t, IsArticle("https://g1.globo.com/a.ghtml"))
	assert.True(t, IsArticle("https://g1.globo.com/a.ghtml?x=1"))
	assert.False(t, IsArticle("https://g1.globo.com/a.ghtml#top"))
	assert.False(t, IsArticle("https://g1.globo.com/a.html"))
	assert.False(t, IsArticle("https://g1.globo.com/a.ghtmlx"))
	assert.False(t, IsArticle(""))
}

func TestNormalizeDate(t *testing.T) {
	tests := map[string]string{
		"2024-05-01T10:22:00.000Z": "2024/05/01",
		"2024/05/01":               "2024/05/01",
		"Publicado em 2023-12-31":  "2023/12/31",
		"01/05/2024":               "",
		"":                         "",
		"2024-5-1":                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeDate(in), "NormalizeDate(%q)", in)
	}
}

func TestExtractCards(t *testing.T) {
	items, err := ExtractCards(homeFixture, homeURL, "column-jornalismo", 0)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "Manchete principal", items[0].Title)
	assert.Equal(t, "https://g1.globo.com/politica/noticia/2024/05/01/a.ghtml", items[0].Href)
	assert.True(t, items[0].Featured)

	assert.Equal(t, "Título do post", items[1].Title)
	assert.False(t, items[1].Featured)

	// same href with a different title is a distinct card
	assert.Equal(t, "Outro título", items[2].Title)
}

func TestExtractCardsLimitAppliesBeforeFiltering(t *testing.T) {
	items, err := ExtractCards(homeFixture, homeURL, "column-jornalismo", 3)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestExtractCardsNegativeLimitDropsFromEnd(t *testing.T) {
	items, err := ExtractCards(homeFixture, homeURL, "column-jornalismo", -3)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Manchete principal", items[0].Title)
	assert.Equal(t, "Título do post", items[1].Title)

	items, err = ExtractCards(homeFixture, homeURL, "column-jornalismo", -10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestExtractCardsResolvesRelativeLinks(t *testing.T) {
	page := `<div id="column-jornalismo">
  <div class="wrapper theme-jornalismo">
    <a class="post__link" href="/politica/noticia/x.ghtml" title="Relativo"></a>
  </div>
  <div class="wrapper theme-jornalismo">
    <a class="post__link" href="//g1.globo.com/y.ghtml" title="Sem esquema"></a>
  </div>
  <div class="wrapper theme-jornalismo">
    <a class="post__link" href="https://www.globo.com/politica/noticia/x.ghtml" title="Relativo"></a>
  </div>
</div>`

	items, err := ExtractCards(page, homeURL, "column-jornalismo", 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "https://www.globo.com/politica/noticia/x.ghtml", items[0].Href)
	assert.Equal(t, "https://g1.globo.com/y.ghtml", items[1].Href)
}

func TestTruncatedLen(t *testing.T) {
	assert.Equal(t, 6, truncatedLen(6, 0))
	assert.Equal(t, 3, truncatedLen(6, 3))
	assert.Equal(t, 6, truncatedLen(6, 10))
	assert.Equal(t, 5, truncatedLen(6, -1))
	assert.Equal(t, 0, truncatedLen(6, -6))
	assert.Equal(t, 0, truncatedLen(6, -7))
}

func TestExtractCardsMissingColumn(t *testing.T) {
	_, err := ExtractCards(homeFixture, homeURL, "column-nope", 0)
	assert.Error(t, err)

	_, err = ExtractCards(`<div id="column-jornalismo"></div>`, homeURL, "column-jornalismo", 0)
	assert.Error(t, err)
}

func TestExtractArticleSubtitleHeading(t *testing.T) {
	page := `<html><head>
		<meta property="og:description" content="Descrição OG">
		<meta property="article:published_time" content="2024-04-30T08:00:00Z">
	</head><body>
		<h2 class="content-head__subtitle">Linha fina &amp; detalhes</h2>
		<time itemprop="datePublished" datetime="2024-05-01T10:00:00.000Z">01/05/2024</time>
	</body></html>`

	subtitle, date, err := ExtractArticle(page)
	require.NoError(t, err)
	assert.Equal(t, "Linha fina & detalhes", subtitle)
	assert.Equal(t, "2024/05/01", date)
}

func TestExtractArticleFallbacks(t *testing.T) {
	page := `<html><head>
		<meta name="description" content="Descrição meta">
		<meta property="og:description" content="Descrição &lt;b&gt;OG&lt;/b&gt;">
		<meta name="article:published_time" content="2024-04-30T08:00:00Z">
	</head><body></body></html>`

	subtitle, date, err := ExtractArticle(page)
	require.NoError(t, err)
	assert.Equal(t, "Descrição OG", subtitle)
	assert.Equal(t, "2024/04/30", date)
}

func TestExtractArticleTimeTextFallback(t *testing.T) {
	page := `<body><time itemprop="datePublished">2022-01-02 10:00</time>
		<p class="content-head__subtitle">Parágrafo</p></body>`

	subtitle, date, err := ExtractArticle(page)
	require.NoError(t, err)
	assert.Equal(t, "Parágrafo", subtitle)
	assert.Equal(t, "2022/01/02", date)
}

func TestExtractArticleNothing(t *testing.T) {
	subtitle, date, err := ExtractArticle(`<html><body><p>texto</p></body></html>`)
	require.NoError(t, err)
	assert.Empty(t, subtitle)
	assert.Empty(t, date)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b", cleanText("  a \n\t b "))
	assert.Equal(t, "bold", cleanText("<b>bold</b>"))
	assert.Equal(t, "Tom & Jerry", cleanText("Tom & Jerry"))
}
