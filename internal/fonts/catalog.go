// Package fonts holds the static font catalog consulted during render
// submission. The catalog is built once at process start and never mutated,
// so unsynchronized concurrent reads are safe.
package fonts

// Font describes one resolvable font family.
type Font struct {
	Family         string `json:"fontFamily"`
	FullName       string `json:"fullName"`
	PostScriptName string `json:"postScriptName"`
	URL            string `json:"url"`
	Category       string `json:"category"`
	Style          string `json:"style"`
}

// Lookup is keyed by the exact, case-sensitive family name. "Roboto" hits,
// "roboto" misses.
var byFamily map[string]Font

var catalog = []Font{
	{Family: "Roboto", FullName: "Roboto Regular", PostScriptName: "Roboto-Regular", URL: "https://fonts.gstatic.com/s/roboto/v30/KFOmCnqEu92Fr1Mu4mxP.ttf", Category: "sans-serif", Style: "normal"},
	{Family: "Roboto Bold", FullName: "Roboto Bold", PostScriptName: "Roboto-Bold", URL: "https://fonts.gstatic.com/s/roboto/v30/KFOlCnqEu92Fr1MmWUlfBBc9.ttf", Category: "sans-serif", Style: "bold"},
	{Family: "Open Sans", FullName: "Open Sans Regular", PostScriptName: "OpenSans-Regular", URL: "https://fonts.gstatic.com/s/opensans/v35/memSYaGs126MiZpBA-UvWbX2vVnXBbObj2OVZyOOSr4dVJWUgsjZ0B4gaVI.ttf", Category: "sans-serif", Style: "normal"},
	{Family: "Lato", FullName: "Lato Regular", PostScriptName: "Lato-Regular", URL: "https://fonts.gstatic.com/s/lato/v24/S6uyw4BMUTPHjx4wXg.ttf", Category: "sans-serif", Style: "normal"},
	{Family: "Montserrat", FullName: "Montserrat Regular", PostScriptName: "Montserrat-Regular", URL: "https://fonts.gstatic.com/s/montserrat/v26/JTUHjIg1_i6t8kCHKm4532VJOt5-QNFgpCtr6Hw5aXo.ttf", Category: "sans-serif", Style: "normal"},
	{Family: "Montserrat Bold", FullName: "Montserrat Bold", PostScriptName: "Montserrat-Bold", URL: "https://fonts.gstatic.com/s/montserrat/v26/JTUHjIg1_i6t8kCHKm4532VJOt5-QNFgpCuM70w5aXo.ttf", Category: "sans-serif", Style: "bold"},
	{Family: "Oswald", FullName: "Oswald Regular", PostScriptName: "Oswald-Regular", URL: "https://fonts.gstatic.com/s/oswald/v53/TK3_WkUHHAIjg75cFRf3bXL8LICs1_FvsUZiZQ.ttf", Category: "sans-serif", Style: "normal"},
	{Family: "Poppins", FullName: "Poppins Regular", PostScriptName: "Poppins-Regular", URL: "https://fonts.gstatic.com/s/poppins/v21/pxiEyp8kv8JHgFVrJJfecg.ttf", Category: "sans-serif", Style: "normal"},
	{Family: "Poppins Bold", FullName: "Poppins Bold", PostScriptName: "Poppins-Bold", URL: "https://fonts.gstatic.com/s/poppins/v21/pxiByp8kv8JHgFVrLCz7Z1xlFd2JQEk.ttf", Category: "sans-serif", Style: "bold"},
	{Family: "Raleway", FullName: "Raleway Regular", PostScriptName: "Raleway-Regular", URL: "https://fonts.gstatic.com/s/raleway/v29/1Ptxg8zYS_SKggPN4iEgvnHyvveLxVvaorCIPrQ.ttf", Category: "sans-serif", Style: "normal"},
	{Family: "Merriweather", FullName: "Merriweather Regular", PostScriptName: "Merriweather-Regular", URL: "https://fonts.gstatic.com/s/merriweather/v30/u-440qyriQwlOrhSvowK_l5OeyxNV-bnrw.ttf", Category: "serif", Style: "normal"},
	{Family: "Playfair Display", FullName: "Playfair Display Regular", PostScriptName: "PlayfairDisplay-Regular", URL: "https://fonts.gstatic.com/s/playfairdisplay/v36/nuFvD-vYSZviVYUb_rj3ij__anPXJzDwcbmjWBN2PKdFvXDXbtXK-F2qO0isEw.ttf", Category: "serif", Style: "normal"},
	{Family: "Source Code Pro", FullName: "Source Code Pro Regular", PostScriptName: "SourceCodePro-Regular", URL: "https://fonts.gstatic.com/s/sourcecodepro/v23/HI_diYsKILxRpg3hIP6sJ7fM7PqPMcMnZFqUwX28DMyQtMRrTFcZZJmOpwVS.ttf", Category: "monospace", Style: "normal"},
	{Family: "Inter", FullName: "Inter Regular", PostScriptName: "Inter-Regular", URL: "https://fonts.gstatic.com/s/inter/v13/UcCO3FwrK3iLTeHuS_fvQtMwCp50KnMw2boKoduKmMEVuLyfAZ9hiA.ttf", Category: "sans-serif", Style: "normal"},
	{Family: "Nunito", FullName: "Nunito Regular", PostScriptName: "Nunito-Regular", URL: "https://fonts.gstatic.com/s/nunito/v26/XRXV3I6Li01BKofINeaBTMnFcQ.ttf", Category: "sans-serif", Style: "normal"},
	{Family: "Bangers", FullName: "Bangers Regular", PostScriptName: "Bangers-Regular", URL: "https://fonts.gstatic.com/s/bangers/v24/FeVQS0BTqb0h60ACL5la2bxii28.ttf", Category: "display", Style: "normal"},
}

func init() {
	byFamily = make(map[string]Font, len(catalog))
	for _, f := range catalog {
		byFamily[f.Family] = f
	}
}

// Find returns the catalog entry for an exact family-name match. A miss is a
// normal outcome: submission simply omits unresolved fonts.
func Find(family string) (Font, bool) {
	f, ok := byFamily[family]
	return f, ok
}

// Families returns every registered family name. The slice is freshly
// allocated; callers may sort or mutate it.
func Families() []string {
	out := make([]string, 0, len(byFamily))
	for fam := range byFamily {
		out = append(out, fam)
	}
	return out
}
