package models

// FearGreedData es el índice de miedo y codicia del mercado
type FearGreedData struct {
	Value               int    `json:"value"`
	ValueClassification string `json:"value_classification"`
	Timestamp           string `json:"timestamp"`
}

// MarketPulseData son indicadores sintéticos del pulso del mercado (escala 0-100)
type MarketPulseData struct {
	TradingVolume   float64 `json:"trading_volume"`
	Volatility      float64 `json:"volatility"`
	Liquidity       float64 `json:"liquidity"`
	NetworkActivity float64 `json:"network_activity"`
	Timestamp       string  `json:"timestamp"`
}

// SentimentData es el resumen de sentimiento del mercado
type SentimentData struct {
	OverallSentiment string `json:"overall_sentiment"`
	ConfidenceScore  int    `json:"confidence_score"`
	SocialMedia      int    `json:"social_media"`
	NewsSentiment    int    `json:"news_sentiment"`
	WhaleActivity    int    `json:"whale_activity"`
	OnChainMetrics   int    `json:"on_chain_metrics"`
	Timestamp        string `json:"timestamp"`
}

// MarketMovers contiene la moneda que más subió y la que más bajó en 24h
type MarketMovers struct {
	TopGainer MoverDetail `json:"top_gainer"`
	TopLoser  MoverDetail `json:"top_loser"`
}

type MoverDetail struct {
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	ChangePct24h float64 `json:"change_pct_24h"`
	PriceChange  float64 `json:"price_change"`
}
