package css

// DefaultStylesheetText is prepended to the page's own style elements on
// every render.
const DefaultStylesheetText = `
script, style, head, title, meta, link { display: none; }
html, body, p, div, section, article, header, footer, nav, main, aside,
h1, h2, h3, h4, h5, h6, ul, ol, pre, blockquote, form, table { display: block; }
li { display: list-item; }
`
