package responses

type Report struct {
	ObjectName   string `json:"objectName"`
	DownloadLink string `json:"downloadLink"`
	RowCount     int    `json:"rowCount"`
}
