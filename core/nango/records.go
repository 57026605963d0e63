package nango

import (
	"context"
	"encoding/json"
)

// EachRecordPage walks every page of the records listing, invoking fn once
// per page in upstream order. The walk stops at the first fetch or callback
// error. The cursor chain is supplied by the platform; an empty next cursor
// ends the walk.
func EachRecordPage(ctx context.Context, client Client, params ListRecordsParams, fn func(records []json.RawMessage) error) error {
	cursor := ""
	for {
		params.Cursor = cursor
		page, err := client.ListRecords(ctx, params)
		if err != nil {
			return err
		}

		if len(page.Records) > 0 {
			if err := fn(page.Records); err != nil {
				return err
			}
		}

		if page.NextCursor == "" {
			return nil
		}
		cursor = page.NextCursor
	}
}
