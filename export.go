package ecotab

import (
	"bytes"
	"context"
	"strconv"
)

// provenanceComment is the fixed leading comment line written by Export.
// It does not start with "#OTU", so a reloaded export skips it and finds
// the real header on the next line.
const provenanceComment = "# Exported from ecotab"

// otuHeaderCell is the first header cell of the canonical text encoding.
const otuHeaderCell = "#OTU ID"

// Export serializes the dataset to the canonical delimited text encoding:
// one provenance comment line, a header with feature-ID cell and sample
// IDs, one row per feature, and a trailing taxonomy column when the
// dataset carries taxonomy. Row and column order match the in-memory
// dataset exactly.
//
// The destination store and delimiter are configurable via options;
// export(load(export(d))) is a fixed point on content.
func (d *Dataset) Export(ctx context.Context, name string, optFns ...Option) error {
	o := applyOptions(optFns)

	var buf bytes.Buffer
	buf.WriteString(provenanceComment)
	buf.WriteByte('\n')

	buf.WriteString(otuHeaderCell)
	for _, id := range d.abundance.ColIDs {
		buf.WriteString(o.delimiter)
		buf.WriteString(id)
	}
	if d.taxonomy != nil {
		buf.WriteString(o.delimiter)
		buf.WriteString(taxonomyColumn)
	}
	buf.WriteByte('\n')

	var taxStrings []string
	if d.taxonomy != nil {
		taxStrings = d.taxonomy.Strings()
	}

	for i, id := range d.abundance.RowIDs {
		buf.WriteString(id)
		for _, v := range d.abundance.Data[i] {
			buf.WriteString(o.delimiter)
			buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		if taxStrings != nil {
			buf.WriteString(o.delimiter)
			buf.WriteString(taxStrings[i])
		}
		buf.WriteByte('\n')
	}

	if err := o.store.Put(ctx, name, buf.Bytes()); err != nil {
		o.logger.LogExport(ctx, name, err)
		return err
	}

	o.logger.LogExport(ctx, name, nil)
	return nil
}
