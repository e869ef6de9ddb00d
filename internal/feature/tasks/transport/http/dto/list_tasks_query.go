package dto

// ListTasksQuery はGET /api/tasksのクエリパラメータを表します。
// 値の検証はクエリビルダ（usecase.TaskFilter.Validate）が行うため、
// ここでは形だけをバインドします。limit/offsetは未指定と0を区別するためポインタです。
type ListTasksQuery struct {
	Status     string `form:"status"`
	SearchTerm string `form:"searchTerm"`
	SortBy     string `form:"sortBy"`
	SortOrder  string `form:"sortOrder"`
	Limit      *int   `form:"limit"`
	Offset     *int   `form:"offset"`
}
