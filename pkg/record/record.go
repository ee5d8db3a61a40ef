// Package record defines the closed set of structured outputs the pipeline
// stages produce and classifies parsed payloads into them.
//
// The wire format carries no type tag: a stage's output is recognized purely
// by which top-level fields it carries. Classification therefore runs an
// ordered table of discriminator field sets over the generic parsed value;
// the table is exported so its mutual exclusivity can be property-tested.
package record

// Kind identifies one of the known record shapes.
type Kind int

const (
	// KindMetadata is the table/scan statistics output.
	KindMetadata Kind = iota
	// KindRuleReport is the policy-violation findings output.
	KindRuleReport
	// KindOptimizationReport is the step-by-step transformation output.
	KindOptimizationReport
	// KindFinalReport is the summary referencing the other three.
	KindFinalReport
)

func (k Kind) String() string {
	switch k {
	case KindMetadata:
		return "metadata"
	case KindRuleReport:
		return "rule_report"
	case KindOptimizationReport:
		return "optimization_report"
	case KindFinalReport:
		return "final_report"
	}
	return "unknown"
}

// Record is one classified stage output. The concrete type is always one of
// *Metadata, *RuleReport, *OptimizationReport or *FinalReport.
type Record interface {
	Kind() Kind
	// Raw returns the generic parsed value the record was classified from.
	// Typed fields are best-effort decodes of it; Raw is authoritative when
	// a producer deviates from the expected shape.
	Raw() map[string]any
}

// TableInfo describes one scanned table or view.
type TableInfo struct {
	TableName      string          `json:"table_name"`
	TableType      string          `json:"table_type,omitempty"`
	SizeGB         float64         `json:"size_gb"`
	RowCount       int64           `json:"row_count"`
	ColumnNames    []string        `json:"column_names,omitempty"`
	Partitioned    bool            `json:"partitioned"`
	PartitionField string          `json:"partition_field,omitempty"`
	Clustered      bool            `json:"clustered"`
	ClusterFields  []string        `json:"cluster_fields,omitempty"`
	ViewDefinition *ViewDefinition `json:"view_definition,omitempty"`
}

// ViewDefinition carries the resolved shape of a view, including the tables
// it reads from.
type ViewDefinition struct {
	SQL                   string      `json:"sql"`
	UnderlyingTables      []TableInfo `json:"underlying_tables,omitempty"`
	UnderlyingTablesCount int         `json:"underlying_tables_count"`
	TotalUnderlyingSizeGB float64     `json:"total_underlying_size_gb"`
	TotalUnderlyingRows   int64       `json:"total_underlying_rows"`
	OptimizationHints     []string    `json:"optimization_hints,omitempty"`
}

// Metadata is the scan-statistics record.
type Metadata struct {
	TablesFound   int         `json:"tables_found"`
	TotalSizeGB   float64     `json:"total_size_gb"`
	TotalRowCount int64       `json:"total_row_count"`
	Tables        []TableInfo `json:"tables,omitempty"`

	raw map[string]any
}

func (*Metadata) Kind() Kind { return KindMetadata }

func (m *Metadata) Raw() map[string]any { return m.raw }

// Violation is one policy rule the query breaks.
type Violation struct {
	RuleID   string `json:"rule_id"`
	Severity string `json:"severity"`
	Impact   string `json:"impact"`
	Fix      string `json:"fix"`
}

// RuleReport is the policy-findings record.
type RuleReport struct {
	RulesChecked    int         `json:"rules_checked"`
	ViolationsFound int         `json:"violations_found"`
	ComplianceScore float64     `json:"compliance_score"`
	Violations      []Violation `json:"violations,omitempty"`
	PassedRules     []string    `json:"passed_rules,omitempty"`
	Summary         string      `json:"summary,omitempty"`

	raw map[string]any
}

func (*RuleReport) Kind() Kind { return KindRuleReport }

func (r *RuleReport) Raw() map[string]any { return r.raw }

// OptimizationStep is one rewrite applied to the query.
type OptimizationStep struct {
	Step         int    `json:"step"`
	Optimization string `json:"optimization"`
	QueryAfter   string `json:"query_after"`
	Improvement  string `json:"improvement"`
	BytesSaved   string `json:"bytes_saved"`
}

// OptimizationReport is the step-by-step transformation record.
type OptimizationReport struct {
	OriginalQuery      string             `json:"original_query"`
	TotalOptimizations int                `json:"total_optimizations"`
	Steps              []OptimizationStep `json:"steps,omitempty"`
	FinalQuery         string             `json:"final_query"`
	TotalImprovement   string             `json:"total_improvement,omitempty"`
	Summary            string             `json:"summary,omitempty"`

	raw map[string]any
}

func (*OptimizationReport) Kind() Kind { return KindOptimizationReport }

func (o *OptimizationReport) Raw() map[string]any { return o.raw }

// ExecutiveSummary heads the final report.
type ExecutiveSummary struct {
	OriginalComplexity  string `json:"original_complexity"`
	OptimizedComplexity string `json:"optimized_complexity"`
	CostReduction       string `json:"cost_reduction"`
	PerformanceGain     string `json:"performance_gain"`
	DataReduction       string `json:"data_reduction"`
}

// MetadataSummary condenses the metadata stage for the final report.
type MetadataSummary struct {
	TablesAnalyzed    int    `json:"tables_analyzed"`
	TotalDataSize     string `json:"total_data_size"`
	PartitionedTables int    `json:"partitioned_tables"`
	ClusteredTables   int    `json:"clustered_tables"`
}

// RulesSummary condenses the rule stage for the final report.
type RulesSummary struct {
	TotalChecked     int    `json:"total_checked"`
	ViolationsFound  int    `json:"violations_found"`
	ComplianceBefore string `json:"compliance_before"`
	ComplianceAfter  string `json:"compliance_after"`
}

// OptimizationSummary condenses the optimization stage for the final report.
type OptimizationSummary struct {
	StepsTaken          int    `json:"steps_taken"`
	FinalQuery          string `json:"final_query"`
	EstimatedCostBefore string `json:"estimated_cost_before"`
	EstimatedCostAfter  string `json:"estimated_cost_after"`
}

// FinalReport is the closing summary record.
type FinalReport struct {
	ExecutiveSummary    ExecutiveSummary    `json:"executive_summary"`
	MetadataSummary     MetadataSummary     `json:"metadata_summary"`
	RulesSummary        RulesSummary        `json:"rules_summary"`
	OptimizationSummary OptimizationSummary `json:"optimization_summary"`
	Recommendations     []string            `json:"recommendations,omitempty"`
	BestPractices       []string            `json:"best_practices,omitempty"`

	raw map[string]any
}

func (*FinalReport) Kind() Kind { return KindFinalReport }

func (f *FinalReport) Raw() map[string]any { return f.raw }
