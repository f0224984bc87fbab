// Package columnar holds named vectors of equal length and loads them from
// row sources.
//
// # Overview
//
// A ColumnStore is the minimal table used to exercise column ingestion and
// ownership: it owns one Vector per column, hands out views on read and
// copies on request.
//
// Load drives one vector.Builder per column from a reader.EntryReader.
// Columns whose type the reader declares (SQL, pgx) are pinned to that Type
// and read through NA-aware typed reads; text sources (CSV, string rows)
// infer and promote each column as values arrive.
//
// # Usage Example
//
//	f, _ := os.Open("data.csv")
//	r, err := reader.NewCSVReader(f, reader.DefaultCSVOptions())
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	store, err := columnar.Load(ctx, r, columnar.LoadOptions{Logger: logger})
//	if err != nil {
//	    return err
//	}
//
//	price, _ := store.Column("price")
//	sorted := price.Sort(vector.Descending)
package columnar
