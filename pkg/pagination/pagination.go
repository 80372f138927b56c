package pagination

// Query 描述一次分页请求。
type Query struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// Meta 描述分页结果的元信息。
type Meta struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

// Normalize 将请求参数收敛到合法区间。
func (q *Query) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
}

// Offset 返回SQL偏移量。
func (q Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

// NewMeta 根据总行数计算分页元信息。
func NewMeta(q Query, total int64) Meta {
	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return Meta{
		Page:        q.Page,
		Limit:       q.Limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     q.Page < totalPages,
		HasPrevious: q.Page > 1,
	}
}
