package recorder

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/estafette/estafette-build-time-analyzer/clients/buildlog"
	"github.com/estafette/estafette-build-time-analyzer/services/analysis"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestRecord(t *testing.T) {

	t.Run("AppendsStartToEmptyLog", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		buildlogClientMock := buildlog.NewMockClient(ctrl)
		buildlogClientMock.EXPECT().ReadLines(gomock.Any()).Return(nil, buildlog.ErrLogFileNotFound).Times(1)
		buildlogClientMock.EXPECT().AppendLine(gomock.Any(), "START: 08/29/16 16:52:14").Return(nil).Times(1)

		recorderService := getRecorderService(buildlogClientMock)

		// act
		logLine, err := recorderService.Record(context.Background(), "START", "08/29/16 16:52:14")

		assert.Nil(t, err)
		assert.Equal(t, analysis.EntryTypeStart, logLine.Type)
	})

	t.Run("AppendsFinishAfterPendingStart", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		buildlogClientMock := buildlog.NewMockClient(ctrl)
		buildlogClientMock.EXPECT().ReadLines(gomock.Any()).Return([]string{"START: 08/29/16 16:52:14", ""}, nil).Times(1)
		buildlogClientMock.EXPECT().AppendLine(gomock.Any(), "FINISH: 08/29/16 16:54:14").Return(nil).Times(1)

		recorderService := getRecorderService(buildlogClientMock)

		// act
		_, err := recorderService.Record(context.Background(), "finish", "08/29/16 16:54:14")

		assert.Nil(t, err)
	})

	t.Run("RecordsCurrentTimeIfTimestampIsNow", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		buildlogClientMock := buildlog.NewMockClient(ctrl)
		buildlogClientMock.EXPECT().ReadLines(gomock.Any()).Return([]string{}, nil).Times(1)
		buildlogClientMock.EXPECT().AppendLine(gomock.Any(), "START: 10/16/26 09:30:00").Return(nil).Times(1)

		recorderService := getRecorderService(buildlogClientMock)
		recorderService.(*service).now = func() time.Time {
			return time.Date(2026, 10, 16, 9, 30, 0, 0, time.Local)
		}

		// act
		logLine, err := recorderService.Record(context.Background(), "START", "now")

		assert.Nil(t, err)
		assert.Equal(t, "10/16/26 09:30:00", logLine.Timestamp)
	})

	t.Run("ReturnsInvalidEntryTypeErrorForUnknownType", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		buildlogClientMock := buildlog.NewMockClient(ctrl)

		recorderService := getRecorderService(buildlogClientMock)

		// act
		_, err := recorderService.Record(context.Background(), "PAUSE", "08/29/16 16:52:14")

		assert.True(t, errors.Is(err, ErrInvalidEntryType))
	})

	t.Run("ReturnsTimestampParseErrorForTimestampInOtherFormat", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		buildlogClientMock := buildlog.NewMockClient(ctrl)

		recorderService := getRecorderService(buildlogClientMock)

		// act
		_, err := recorderService.Record(context.Background(), "START", "2016-08-29 16:52:14")

		assert.True(t, errors.Is(err, analysis.ErrTimestampParse))
	})

	t.Run("ReturnsUnexpectedTokenErrorForFinishWithoutPendingStart", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		buildlogClientMock := buildlog.NewMockClient(ctrl)
		buildlogClientMock.EXPECT().ReadLines(gomock.Any()).Return([]string{"START: 08/29/16 16:52:14", "FINISH: 08/29/16 16:54:14"}, nil).Times(1)
		buildlogClientMock.EXPECT().AppendLine(gomock.Any(), gomock.Any()).Times(0)

		recorderService := getRecorderService(buildlogClientMock)

		// act
		_, err := recorderService.Record(context.Background(), "FINISH", "08/29/16 16:55:14")

		assert.True(t, errors.Is(err, analysis.ErrUnexpectedToken))
	})

	t.Run("ReturnsUnexpectedTokenErrorForStartWhileBuildIsPending", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		buildlogClientMock := buildlog.NewMockClient(ctrl)
		buildlogClientMock.EXPECT().ReadLines(gomock.Any()).Return([]string{"START: 08/29/16 16:52:14"}, nil).Times(1)
		buildlogClientMock.EXPECT().AppendLine(gomock.Any(), gomock.Any()).Times(0)

		recorderService := getRecorderService(buildlogClientMock)

		// act
		_, err := recorderService.Record(context.Background(), "START", "08/29/16 16:55:14")

		assert.True(t, errors.Is(err, analysis.ErrUnexpectedToken))
	})

	t.Run("ReturnsFinishBeforeStartErrorIfFinishIsEarlierThanPendingStart", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		buildlogClientMock := buildlog.NewMockClient(ctrl)
		buildlogClientMock.EXPECT().ReadLines(gomock.Any()).Return([]string{"START: 08/29/16 16:52:14"}, nil).Times(1)
		buildlogClientMock.EXPECT().AppendLine(gomock.Any(), gomock.Any()).Times(0)

		recorderService := getRecorderService(buildlogClientMock)

		// act
		_, err := recorderService.Record(context.Background(), "FINISH", "08/29/16 16:50:00")

		assert.True(t, errors.Is(err, ErrFinishBeforeStart))
	})

	t.Run("ReturnsErrorIfExistingLogIsInvalid", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		buildlogClientMock := buildlog.NewMockClient(ctrl)
		buildlogClientMock.EXPECT().ReadLines(gomock.Any()).Return([]string{"FINISH: 08/29/16 16:52:14"}, nil).Times(1)
		buildlogClientMock.EXPECT().AppendLine(gomock.Any(), gomock.Any()).Times(0)

		recorderService := getRecorderService(buildlogClientMock)

		// act
		_, err := recorderService.Record(context.Background(), "START", "08/29/16 16:55:14")

		assert.True(t, errors.Is(err, analysis.ErrUnexpectedToken))
		var lineErr *analysis.LineError
		if assert.True(t, errors.As(err, &lineErr)) {
			assert.Equal(t, 1, lineErr.LineNumber)
		}
	})

	t.Run("ReturnsErrorIfAppendingFails", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		buildlogClientMock := buildlog.NewMockClient(ctrl)
		buildlogClientMock.EXPECT().ReadLines(gomock.Any()).Return([]string{}, nil).Times(1)
		buildlogClientMock.EXPECT().AppendLine(gomock.Any(), gomock.Any()).Return(fmt.Errorf("Disk full")).Times(1)

		recorderService := getRecorderService(buildlogClientMock)

		// act
		_, err := recorderService.Record(context.Background(), "START", "08/29/16 16:52:14")

		assert.NotNil(t, err)
	})
}

func getRecorderService(buildlogClient buildlog.Client) Service {
	recorderService, _ := NewService(context.Background(), buildlogClient, analysis.DefaultTimeFormat)
	return recorderService
}
