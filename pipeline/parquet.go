package pipeline

import (
	"math"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	protrack "protrack-analyzer"
	"protrack-analyzer/baro"
)

type sampleParquetRow struct {
	TimeS        float64 `parquet:"name=time_s, type=DOUBLE"`
	AltitudeM    float64 `parquet:"name=altitude_m, type=DOUBLE"`
	AltitudeFt   int64   `parquet:"name=altitude_ft, type=INT64"`
	SASAltitudeM float64 `parquet:"name=sas_altitude_m, type=DOUBLE"`
	SpeedMPS     float64 `parquet:"name=speed_mps, type=DOUBLE"`
	SASSpeedMPS  float64 `parquet:"name=sas_speed_mps, type=DOUBLE"`
	AccelG       float64 `parquet:"name=accel_g, type=DOUBLE"`
	Comment      string  `parquet:"name=comment, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
}

// writeSamplesParquet is the columnar variant of the samples artifact.
// Samples without a derivative window carry NaN in the derivative columns.
func writeSamplesParquet(path string, a *protrack.Analysis) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	pw, err := writer.NewParquetWriter(fw, new(sampleParquetRow), 4)
	if err != nil {
		_ = fw.Close()
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	series := a.Series
	kin := a.Kinematics
	for i := 0; i < series.Len(); i++ {
		row := sampleParquetRow{
			TimeS:        protrack.IndexToTime(i),
			AltitudeM:    series.Altitude[i],
			AltitudeFt:   int64(baro.MToFt(series.Altitude[i])),
			SASAltitudeM: series.SASAltitude[i],
			SpeedMPS:     math.NaN(),
			SASSpeedMPS:  math.NaN(),
			AccelG:       math.NaN(),
			Comment:      sampleComment(a, i),
		}
		if j := i - kin.StartIndex; j >= 0 && j < kin.Len() {
			row.SpeedMPS = kin.Speed[j]
			row.SASSpeedMPS = kin.SASSpeed[j]
			row.AccelG = kin.Acceleration[j]
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			_ = fw.Close()
			return err
		}
	}
	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}
