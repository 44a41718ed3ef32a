package dto

// SearchResponse resultados de la búsqueda global.
type SearchResponse struct {
	Products   []ProductResponse  `json:"products"`
	Categories []CategoryResponse `json:"categories"`
	Sales      []SaleResponse     `json:"sales"`
}
