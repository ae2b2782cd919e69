package category

type CategoryResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
