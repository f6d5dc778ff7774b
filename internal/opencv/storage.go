package opencv

import (
	"encoding/xml"
)

const (
	// StorageName is the root element of every OpenCV storage document.
	StorageName = "opencv_storage"
	// DefaultModelName is the element the model is stored under.
	DefaultModelName = "svm"

	SvmTypeID    = "opencv-ml-svm"
	MatrixTypeID = "opencv-matrix"

	declaration = `<?xml version="1.0"?>` + "\n"
)

// Storage is the root of an OpenCV file storage document.
type Storage struct {
	XMLName xml.Name `xml:"opencv_storage"`
	Model   Model
}

// Model is the xml layout CvSVM reads back with its read method.
type Model struct {
	// XMLName carries the configurable model element name.
	XMLName           xml.Name
	TypeID            string             `xml:"type_id,attr"`
	SvmType           string             `xml:"svm_type"`
	Kernel            Kernel             `xml:"kernel"`
	C                 string             `xml:"C"`
	VarAll            int                `xml:"var_all"`
	VarCount          int                `xml:"var_count"`
	ClassCount        int                `xml:"class_count"`
	ClassLabels       Matrix             `xml:"class_labels"`
	SvTotal           int                `xml:"sv_total"`
	SupportVectors    []string           `xml:"support_vectors>_"`
	DecisionFunctions []DecisionFunction `xml:"decision_functions>_"`
}

// Kernel holds the kernel parameters, degree and coef0 only for the kernels using them.
type Kernel struct {
	Type   string `xml:"type"`
	Degree string `xml:"degree,omitempty"`
	Gamma  string `xml:"gamma"`
	Coef0  string `xml:"coef0,omitempty"`
}

// Matrix is a dense opencv-matrix node.
type Matrix struct {
	TypeID string `xml:"type_id,attr"`
	Rows   int    `xml:"rows"`
	Cols   int    `xml:"cols"`
	Dt     string `xml:"dt"`
	Data   string `xml:"data"`
}

// DecisionFunction is one binary decision function node.
type DecisionFunction struct {
	SvCount int    `xml:"sv_count"`
	Rho     string `xml:"rho"`
	Alpha   string `xml:"alpha"`
	Index   string `xml:"index"`
}
