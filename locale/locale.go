// Package locale holds the dashboard's display strings. The English and
// Indonesian variants share every code path; only the text differs.
package locale

import "fmt"

// Supported language codes.
const (
	English    = "en"
	Indonesian = "id"
)

// Strings is one complete set of display text. Fields ending in Fmt are
// fmt format strings.
type Strings struct {
	Lang string `json:"lang"`

	AppTitle string `json:"app_title"`
	Footer   string `json:"footer"`

	MenuMain            string `json:"menu_main"`
	MenuOverview        string `json:"menu_overview"`
	MenuEDA             string `json:"menu_eda"`
	MenuRecommendations string `json:"menu_recommendations"`

	LoadErrorFmt string `json:"-"`
	NoData       string `json:"no_data"`
	TopHidden    string `json:"top_hidden"`
	CaptionFmt   string `json:"-"`

	MainTitle   string   `json:"main_title"`
	ContextHead string   `json:"context_head"`
	Context     string   `json:"context"`
	Goal        string   `json:"goal"`
	Objectives  []string `json:"objectives"`

	OverviewTitle string `json:"overview_title"`
	MetricRaw     string `json:"metric_raw"`
	MetricCleaned string `json:"metric_cleaned"`
	MetricRemoved string `json:"metric_removed"`
	MetricYears   string `json:"metric_years"`
	PreviewTitle  string `json:"preview_title"`
	DescribeTitle string `json:"describe_title"`
	TypesTitle    string `json:"types_title"`
	TypeHeader    string `json:"type_header"`

	EDATitle        string `json:"eda_title"`
	TabUnivariate   string `json:"tab_univariate"`
	TabBivariate    string `json:"tab_bivariate"`
	TabMultivariate string `json:"tab_multivariate"`

	HistTitleFmt    string `json:"-"`
	BoxTitleFmt     string `json:"-"`
	TopTitleFmt     string `json:"-"`
	CountTitleFmt   string `json:"-"`
	ScatterTitleFmt string `json:"-"`
	GroupedTitleFmt string `json:"-"`
	CorrTitle       string `json:"corr_title"`
	LabelCount      string `json:"label_count"`
	LabelPrice      string `json:"label_price"`
	LabelMake       string `json:"label_make"`

	RecommendationsTitle string   `json:"recommendations_title"`
	RecommendationsIntro string   `json:"recommendations_intro"`
	InsightsHead         string   `json:"insights_head"`
	Insights             []string `json:"insights"`
	FutureHead           string   `json:"future_head"`
	FutureWork           []string `json:"future_work"`
}

// LoadError formats the single message shown when the dataset cannot be loaded.
func (s *Strings) LoadError(err error) string {
	return fmt.Sprintf(s.LoadErrorFmt, err)
}

// Caption describes the active filter and the number of matching rows.
func (s *Strings) Caption(yearMin, yearMax int, make string, total int) string {
	return fmt.Sprintf(s.CaptionFmt, yearMin, yearMax, make, total)
}

var english = Strings{
	Lang:     English,
	AppTitle: "Saudi Used Car Dashboard",
	Footer:   "Mini Project Scripting Language",

	MenuMain:            "Main",
	MenuOverview:        "Data Overview",
	MenuEDA:             "Exploratory Data Analysis",
	MenuRecommendations: "Recommendations",

	LoadErrorFmt: "Failed to load data. Error: %v",
	NoData:       "No data found with the selected filters.",
	TopHidden:    "You selected a specific brand, Top 10 chart is hidden.",
	CaptionFmt:   "Showing data for: %d-%d | Make: %s | Total Data: %d",

	MainTitle:   "Saudi Arabia Used Car Analytics",
	ContextHead: "Context & Data Description",
	Context: "This dashboard analyzes the used car market transactions in Saudi Arabia (sourced from Syarah.com). " +
		"The dataset captures various vehicle specifications such as Year, Mileage, Make, and Engine Size.",
	Goal: "Primary Goal: To uncover market price patterns and solve the issue of price uncertainty " +
		"(e.g., 'Negotiable' or hidden prices) that often confuses both buyers and sellers.",
	Objectives: []string{
		"Analyze Price Distribution",
		"Identify Key Price Factors",
		"Provide Transparent Insights",
	},

	OverviewTitle: "Data Overview",
	MetricRaw:     "Total Raw Data",
	MetricCleaned: "Cleaned Data (Usable)",
	MetricRemoved: "Removed Data (Price=0 / Duplicates)",
	MetricYears:   "Years in Data",
	PreviewTitle:  "Dataset Preview",
	DescribeTitle: "Descriptive Statistics",
	TypesTitle:    "Data Types",
	TypeHeader:    "Data Type",

	EDATitle:        "Exploratory Data Analysis (EDA)",
	TabUnivariate:   "Univariate Analysis",
	TabBivariate:    "Bivariate Analysis",
	TabMultivariate: "Multivariate Analysis",

	HistTitleFmt:    "Price Distribution (%s)",
	BoxTitleFmt:     "Price Boxplot & Outliers (%s)",
	TopTitleFmt:     "Top %d Most Listed Brands",
	CountTitleFmt:   "Distribution by %s",
	ScatterTitleFmt: "Relationship: %s vs Price",
	GroupedTitleFmt: "Price Distribution by %s",
	CorrTitle:       "Correlation Heatmap",
	LabelCount:      "Count",
	LabelPrice:      "Price",
	LabelMake:       "Make",

	RecommendationsTitle: "Insights & Recommendations",
	RecommendationsIntro: "Based on the Exploratory Data Analysis, here are the key takeaways and future steps.",
	InsightsHead:         "Strategic Business Insights",
	Insights: []string{
		"Mileage Matters: Cars with lower mileage command significantly higher prices. Sellers should highlight low mileage as a key selling point.",
		"Market Preference: 'Standard' options are the most common, but 'Full Option' cars have a wider price variance.",
		"Age Factor: Depreciation is evident. Cars older than 5 years see a sharper price decline.",
	},
	FutureHead: "Future Technical Development",
	FutureWork: []string{
		"Feature Engineering: create a 'Car_Age' feature (Current Year - Year) and group 'Make' into 'Luxury' vs 'Economy' segments.",
		"Machine Learning Modelling: develop a Price Prediction Model using Random Forest or XGBoost, evaluated with MAPE.",
	},
}

var indonesian = Strings{
	Lang:     Indonesian,
	AppTitle: "Dashboard Mobil Bekas Saudi",
	Footer:   "Mini Project Scripting Language",

	MenuMain:            "Beranda",
	MenuOverview:        "Ringkasan Data",
	MenuEDA:             "Analisis Data Eksploratif",
	MenuRecommendations: "Rekomendasi",

	LoadErrorFmt: "Gagal memuat data. Error: %v",
	NoData:       "Tidak ada data untuk filter yang dipilih.",
	TopHidden:    "Anda memilih merek tertentu, grafik Top 10 disembunyikan.",
	CaptionFmt:   "Menampilkan data: %d-%d | Merek: %s | Total Data: %d",

	MainTitle:   "Analitik Mobil Bekas Arab Saudi",
	ContextHead: "Konteks & Deskripsi Data",
	Context: "Dashboard ini menganalisis transaksi pasar mobil bekas di Arab Saudi (bersumber dari Syarah.com). " +
		"Dataset mencakup berbagai spesifikasi kendaraan seperti Tahun, Jarak Tempuh, Merek, dan Kapasitas Mesin.",
	Goal: "Tujuan Utama: Mengungkap pola harga pasar dan mengatasi ketidakpastian harga " +
		"(misalnya harga 'Negotiable' atau tersembunyi) yang sering membingungkan pembeli maupun penjual.",
	Objectives: []string{
		"Menganalisis Distribusi Harga",
		"Mengidentifikasi Faktor Utama Harga",
		"Menyajikan Insight yang Transparan",
	},

	OverviewTitle: "Ringkasan Data",
	MetricRaw:     "Total Data Mentah",
	MetricCleaned: "Data Bersih (Dapat Dipakai)",
	MetricRemoved: "Data Dihapus (Harga=0 / Duplikat)",
	MetricYears:   "Rentang Tahun Data",
	PreviewTitle:  "Pratinjau Dataset",
	DescribeTitle: "Statistik Deskriptif",
	TypesTitle:    "Tipe Data",
	TypeHeader:    "Tipe Data",

	EDATitle:        "Analisis Data Eksploratif (EDA)",
	TabUnivariate:   "Analisis Univariat",
	TabBivariate:    "Analisis Bivariat",
	TabMultivariate: "Analisis Multivariat",

	HistTitleFmt:    "Distribusi Harga (%s)",
	BoxTitleFmt:     "Boxplot Harga & Outlier (%s)",
	TopTitleFmt:     "Top %d Merek Terbanyak",
	CountTitleFmt:   "Distribusi berdasarkan %s",
	ScatterTitleFmt: "Hubungan: %s vs Harga",
	GroupedTitleFmt: "Distribusi Harga berdasarkan %s",
	CorrTitle:       "Heatmap Korelasi",
	LabelCount:      "Jumlah",
	LabelPrice:      "Harga",
	LabelMake:       "Merek",

	RecommendationsTitle: "Insight & Rekomendasi",
	RecommendationsIntro: "Berdasarkan Analisis Data Eksploratif, berikut poin utama dan langkah selanjutnya.",
	InsightsHead:         "Insight Bisnis Strategis",
	Insights: []string{
		"Jarak Tempuh Penting: Mobil dengan jarak tempuh rendah dihargai jauh lebih tinggi. Penjual sebaiknya menonjolkan jarak tempuh rendah.",
		"Preferensi Pasar: Opsi 'Standard' paling umum, tetapi mobil 'Full Option' memiliki variasi harga yang lebih lebar.",
		"Faktor Usia: Depresiasi terlihat jelas. Mobil berusia lebih dari 5 tahun mengalami penurunan harga yang lebih tajam.",
	},
	FutureHead: "Pengembangan Teknis Selanjutnya",
	FutureWork: []string{
		"Feature Engineering: membuat fitur 'Car_Age' (Tahun Sekarang - Tahun) dan mengelompokkan 'Make' menjadi segmen 'Luxury' dan 'Economy'.",
		"Pemodelan Machine Learning: membangun model prediksi harga dengan Random Forest atau XGBoost, dievaluasi dengan MAPE.",
	},
}

// Supported reports whether lang has a string table.
func Supported(lang string) bool {
	return lang == English || lang == Indonesian
}

// Get returns the strings for lang, falling back to English.
func Get(lang string) *Strings {
	if lang == Indonesian {
		s := indonesian
		return &s
	}
	s := english
	return &s
}
