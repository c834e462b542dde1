package logging

// Field names shared by every component that logs a classification decision.
// Keeping them in one place lets log queries filter on a stable vocabulary.
const (
	FieldDescription   = "description"
	FieldMainCategory  = "main_category"
	FieldSubcategoryID = "subcategory_id"
	FieldMerchantID    = "merchant_id"
	FieldReason        = "reason"
	FieldConfidence    = "confidence"
	FieldScore         = "score"
	FieldStage         = "stage"
	FieldKeyword       = "keyword"
	FieldOperation     = "operation"
	FieldBackend       = "backend"
	FieldError         = "error"
	FieldDuration      = "duration_ms"
	FieldCount         = "count"
	FieldFile          = "file_path"
	FieldInputFile     = "input_file"
	FieldOutputFile    = "output_file"
)
