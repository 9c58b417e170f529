package translator

import (
	"strings"
)

// Exemplar maps a natural-language pattern to its canonical expression.
type Exemplar struct {
	Question string
	Code     string
}

// exemplars is the fixed few-shot library. Column names inside are
// placeholders the model is told to substitute with real columns.
var exemplars = []Exemplar{
	// Dataset information
	{"What columns are in this dataset?", "df.columns.tolist()"},
	{"How many rows and columns?", "df.shape"},
	{"How many rows?", "len(df)"},
	{"How many columns?", "len(df.columns)"},
	{"What are the data types?", "df.dtypes"},

	// Viewing data
	{"Show first 5 rows", "df.head(5)"},
	{"Show last 2 rows", "df.tail(2)"},
	{"Show me the data", "df.head(20)"},

	// Statistical analysis
	{"Show statistical summary", "df.describe()"},
	{"Sum of salary column", "df['salary'].sum()"},
	{"Average of age column", "df['age'].mean()"},
	{"Median of price", "df['price'].median()"},
	{"Min of age", "df['age'].min()"},
	{"Max of salary", "df['salary'].max()"},
	{"Standard deviation of salary", "df['salary'].std()"},

	// Distributions (always returned as a table)
	{"Show distribution of gender column", "df['gender'].value_counts().to_frame(name='Count')"},
	{"How many of each department?", "df['department'].value_counts().to_frame(name='Count')"},

	// Unique values
	{"Unique values in gender", "df['gender'].unique().tolist()"},
	{"How many unique values in gender?", "df['gender'].nunique()"},

	// String filtering (case-insensitive)
	{"Show row where name is 'Jane Doe'", "df[df['name'].str.lower() == 'jane doe']"},
	{"Rows with department 'Marketing'", "df[df['department'].str.lower() == 'marketing']"},

	// Aggregations over filters
	{"Count of Male in gender", "(df['gender'].str.lower() == 'male').sum()"},
	{"How many active users?", "(df['status'].str.lower() == 'active').sum()"},

	// Missing values
	{"How many missing values in each column?", "df.isnull().sum().to_frame(name='Missing Values')"},
	{"Total missing values", "df.isnull().sum().sum()"},

	// Sorting
	{"Sort by salary descending", "df.sort_values('salary', ascending=False)"},
	{"Top 5 highest salaries", "df.nlargest(5, 'salary')"},
	{"Bottom 3 ages", "df.nsmallest(3, 'age')"},
}

// BuildPrompt assembles the code-generation prompt: grammar rules, the
// dataset's actual column names, retrieved context, and the exemplar
// library.
func BuildPrompt(query string, columns []string, context string) string {
	var sb strings.Builder

	sb.WriteString("TASK: Generate one line of dataframe query code ONLY. Nothing else.\n\n")
	sb.WriteString("DataFrame 'df' has columns: ")
	sb.WriteString(strings.Join(columns, ", "))
	sb.WriteString("\n\nQuery: ")
	sb.WriteString(query)
	sb.WriteString("\n\n")

	if context != "" {
		sb.WriteString(context)
		sb.WriteString("\n\n")
	}

	sb.WriteString(`CRITICAL RULES:
- Return ONLY an executable expression over 'df'
- ONE line of code starting with 'df' or '(df'
- NO "Thought:", "Action:", "Observation:" and NO "Final Answer:"
- NO explanations, comments, imports, or markdown code blocks
- NO creating new dataframes and NO reassigning df
- For string comparisons, ALWAYS use .str.lower() for case-insensitive matching
- Use ACTUAL column names from the DataFrame

RETURN FORMAT RULES:
- If asked "how many", return a COUNT (len() or .sum() over a filter)
- If asked "show" or "list" or "display", return the actual DATA
- If asked "distribution" or "value counts", return a TABLE with counts

EXAMPLES (substitute real column names):
`)

	for _, ex := range exemplars {
		sb.WriteString("Q: \"")
		sb.WriteString(ex.Question)
		sb.WriteString("\" -> ")
		sb.WriteString(ex.Code)
		sb.WriteString("\n")
	}

	sb.WriteString("\nYOUR CODE (one line only):")
	return sb.String()
}

// BuildStrictPrompt is the retry prompt used when the first response
// contained no code-bearing line at all.
func BuildStrictPrompt(query string, columns []string) string {
	var sb strings.Builder
	sb.WriteString("Return ONLY dataframe code. No text, no explanation.\n\n")
	sb.WriteString("Query: ")
	sb.WriteString(query)
	sb.WriteString("\nDataFrame: df\nColumns: ")
	sb.WriteString(strings.Join(columns, ", "))
	sb.WriteString("\n\nCode only:")
	return sb.String()
}
