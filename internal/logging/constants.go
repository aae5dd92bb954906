package logging

// Standardized field names for structured logging.
const (
	FieldFile          = "file_path"
	FieldArchive       = "archive"
	FieldTable         = "table"
	FieldColumn        = "column"
	FieldRow           = "row"
	FieldKeyword       = "keyword"
	FieldKeywords      = "keywords"
	FieldCategory      = "category"
	FieldSubCategory   = "sub_category"
	FieldMemo          = "memo"
	FieldTransactionID = "transaction_id"
	FieldOperation     = "operation"
	FieldReason        = "reason"
	FieldCount         = "count"
	FieldFormat        = "format"
	FieldError         = "error"
)
