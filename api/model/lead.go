package model

type CreateLead struct {
	Contact     map[string]interface{} `json:"contact"`
	UploadBatch string                 `json:"upload_batch"`
}

type BulkCreateLeads struct {
	Leads       []map[string]interface{} `json:"leads"`
	UploadBatch string                   `json:"upload_batch"`
}
