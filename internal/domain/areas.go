package domain

import (
	"sort"
	"strings"
)

// areaEntry associates one region with its URL path slug. Aliases cover the
// Japanese spellings users paste in alongside the romaji canonical name.
type areaEntry struct {
	Name    string
	Slug    string
	Aliases []string
}

// areaTable is the static region-to-slug mapping: all 47 prefectures plus
// the major city and district shortcuts the site exposes as top-level paths.
// Immutable after init; lookups never mutate it.
var areaTable = []areaEntry{
	// Prefectures.
	{Name: "Hokkaido", Slug: "hokkaido", Aliases: []string{"北海道"}},
	{Name: "Aomori", Slug: "aomori", Aliases: []string{"青森県", "青森"}},
	{Name: "Iwate", Slug: "iwate", Aliases: []string{"岩手県", "岩手"}},
	{Name: "Miyagi", Slug: "miyagi", Aliases: []string{"宮城県", "宮城"}},
	{Name: "Akita", Slug: "akita", Aliases: []string{"秋田県", "秋田"}},
	{Name: "Yamagata", Slug: "yamagata", Aliases: []string{"山形県", "山形"}},
	{Name: "Fukushima", Slug: "fukushima", Aliases: []string{"福島県", "福島"}},
	{Name: "Ibaraki", Slug: "ibaraki", Aliases: []string{"茨城県", "茨城"}},
	{Name: "Tochigi", Slug: "tochigi", Aliases: []string{"栃木県", "栃木"}},
	{Name: "Gunma", Slug: "gunma", Aliases: []string{"群馬県", "群馬"}},
	{Name: "Saitama", Slug: "saitama", Aliases: []string{"埼玉県", "埼玉"}},
	{Name: "Chiba", Slug: "chiba", Aliases: []string{"千葉県", "千葉"}},
	{Name: "Tokyo", Slug: "tokyo", Aliases: []string{"東京都", "東京"}},
	{Name: "Kanagawa", Slug: "kanagawa", Aliases: []string{"神奈川県", "神奈川"}},
	{Name: "Niigata", Slug: "niigata", Aliases: []string{"新潟県", "新潟"}},
	{Name: "Toyama", Slug: "toyama", Aliases: []string{"富山県", "富山"}},
	{Name: "Ishikawa", Slug: "ishikawa", Aliases: []string{"石川県", "石川"}},
	{Name: "Fukui", Slug: "fukui", Aliases: []string{"福井県", "福井"}},
	{Name: "Yamanashi", Slug: "yamanashi", Aliases: []string{"山梨県", "山梨"}},
	{Name: "Nagano", Slug: "nagano", Aliases: []string{"長野県", "長野"}},
	{Name: "Gifu", Slug: "gifu", Aliases: []string{"岐阜県", "岐阜"}},
	{Name: "Shizuoka", Slug: "shizuoka", Aliases: []string{"静岡県", "静岡"}},
	{Name: "Aichi", Slug: "aichi", Aliases: []string{"愛知県", "愛知"}},
	{Name: "Mie", Slug: "mie", Aliases: []string{"三重県", "三重"}},
	{Name: "Shiga", Slug: "shiga", Aliases: []string{"滋賀県", "滋賀"}},
	{Name: "Kyoto", Slug: "kyoto", Aliases: []string{"京都府", "京都"}},
	{Name: "Osaka", Slug: "osaka", Aliases: []string{"大阪府", "大阪"}},
	{Name: "Hyogo", Slug: "hyogo", Aliases: []string{"兵庫県", "兵庫"}},
	{Name: "Nara", Slug: "nara", Aliases: []string{"奈良県", "奈良"}},
	{Name: "Wakayama", Slug: "wakayama", Aliases: []string{"和歌山県", "和歌山"}},
	{Name: "Tottori", Slug: "tottori", Aliases: []string{"鳥取県", "鳥取"}},
	{Name: "Shimane", Slug: "shimane", Aliases: []string{"島根県", "島根"}},
	{Name: "Okayama", Slug: "okayama", Aliases: []string{"岡山県", "岡山"}},
	{Name: "Hiroshima", Slug: "hiroshima", Aliases: []string{"広島県", "広島"}},
	{Name: "Yamaguchi", Slug: "yamaguchi", Aliases: []string{"山口県", "山口"}},
	{Name: "Tokushima", Slug: "tokushima", Aliases: []string{"徳島県", "徳島"}},
	{Name: "Kagawa", Slug: "kagawa", Aliases: []string{"香川県", "香川"}},
	{Name: "Ehime", Slug: "ehime", Aliases: []string{"愛媛県", "愛媛"}},
	{Name: "Kochi", Slug: "kochi", Aliases: []string{"高知県", "高知"}},
	{Name: "Fukuoka", Slug: "fukuoka", Aliases: []string{"福岡県", "福岡"}},
	{Name: "Saga", Slug: "saga", Aliases: []string{"佐賀県", "佐賀"}},
	{Name: "Nagasaki", Slug: "nagasaki", Aliases: []string{"長崎県", "長崎"}},
	{Name: "Kumamoto", Slug: "kumamoto", Aliases: []string{"熊本県", "熊本"}},
	{Name: "Oita", Slug: "oita", Aliases: []string{"大分県", "大分"}},
	{Name: "Miyazaki", Slug: "miyazaki", Aliases: []string{"宮崎県", "宮崎"}},
	{Name: "Kagoshima", Slug: "kagoshima", Aliases: []string{"鹿児島県", "鹿児島"}},
	{Name: "Okinawa", Slug: "okinawa", Aliases: []string{"沖縄県", "沖縄"}},

	// Major cities and districts with dedicated top-level paths.
	{Name: "Sapporo", Slug: "sapporo", Aliases: []string{"札幌"}},
	{Name: "Sendai", Slug: "sendai", Aliases: []string{"仙台"}},
	{Name: "Yokohama", Slug: "yokohama", Aliases: []string{"横浜"}},
	{Name: "Kawasaki", Slug: "kawasaki", Aliases: []string{"川崎"}},
	{Name: "Nagoya", Slug: "nagoya", Aliases: []string{"名古屋"}},
	{Name: "Kobe", Slug: "kobe", Aliases: []string{"神戸"}},
	{Name: "Hakata", Slug: "hakata", Aliases: []string{"博多"}},
	{Name: "Shibuya", Slug: "shibuya", Aliases: []string{"渋谷"}},
	{Name: "Shinjuku", Slug: "shinjuku", Aliases: []string{"新宿"}},
	{Name: "Ginza", Slug: "ginza", Aliases: []string{"銀座"}},
	{Name: "Ikebukuro", Slug: "ikebukuro", Aliases: []string{"池袋"}},
	{Name: "Ueno", Slug: "ueno", Aliases: []string{"上野"}},
	{Name: "Roppongi", Slug: "roppongi", Aliases: []string{"六本木"}},
	{Name: "Akihabara", Slug: "akihabara", Aliases: []string{"秋葉原"}},
	{Name: "Shinagawa", Slug: "shinagawa", Aliases: []string{"品川"}},
	{Name: "Ebisu", Slug: "ebisu", Aliases: []string{"恵比寿"}},
	{Name: "Asakusa", Slug: "asakusa", Aliases: []string{"浅草"}},
	{Name: "Kichijoji", Slug: "kichijoji", Aliases: []string{"吉祥寺"}},
	{Name: "Umeda", Slug: "umeda", Aliases: []string{"梅田"}},
	{Name: "Namba", Slug: "namba", Aliases: []string{"難波"}},
}

var (
	areaSlugIndex = map[string]string{}
	slugNameIndex = map[string]string{}
)

func init() {
	for _, entry := range areaTable {
		areaSlugIndex[strings.ToLower(entry.Name)] = entry.Slug
		for _, alias := range entry.Aliases {
			areaSlugIndex[alias] = entry.Slug
		}
		if _, ok := slugNameIndex[entry.Slug]; !ok {
			slugNameIndex[entry.Slug] = entry.Name
		}
	}
}

// ResolveAreaSlug maps a region name onto its URL path slug. Matching is
// exact after trimming (romaji names are case-insensitive); a miss returns
// ok=false and callers fall back to the generic, unfiltered endpoint.
func ResolveAreaSlug(area string) (string, bool) {
	key := strings.TrimSpace(area)
	if key == "" {
		return "", false
	}
	if slug, ok := areaSlugIndex[key]; ok {
		return slug, true
	}
	slug, ok := areaSlugIndex[strings.ToLower(key)]
	return slug, ok
}

// AreaForSlug returns the canonical region name for a slug.
func AreaForSlug(slug string) (string, bool) {
	name, ok := slugNameIndex[strings.TrimSpace(slug)]
	return name, ok
}

// AreaNames lists the canonical region names in the slug table, sorted.
func AreaNames() []string {
	names := make([]string, 0, len(areaTable))
	for _, entry := range areaTable {
		names = append(names, entry.Name)
	}
	sort.Strings(names)
	return names
}
